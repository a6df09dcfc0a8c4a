// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	ModsDirNotFoundId Id = iota + 1
	ModListNotFoundId
	ModNotFoundId
	NoLevelDatId
	MalformedSaveId
	CampaignSaveUnsupportedId
	SettingsShapeId
	ModSetNotFoundId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	modsDirNotFoundIssue = &Issue{
		id: ModsDirNotFoundId,
		mdMsg: `
# Mods directory not found!

fmm could not open the mods directory it was pointed at.

## The directory is chosen in this order:
1. The ` + "`--mods-dir`" + ` flag
2. ` + "`mods_dir`" + ` in your config file (or ` + "`FMM_MODS_DIR`" + `)
3. ` + "`<game_dir>/mods`" + ` when ` + "`game_dir`" + ` is set
4. ` + "`./mods`" + `

## Things you can try:
- Point fmm at your game installation:
~~~
$ fmm --game-dir ~/factorio sync enable flib
~~~
- Check the resolved configuration:
~~~
$ fmm config show
~~~`,
		extLinks: []HttpLink{"https://wiki.factorio.com/Application_directory"},
	}

	modListNotFoundIssue = &Issue{
		id: ModListNotFoundId,
		mdMsg: `
# No mod-list.json in the mods directory!

The game writes ` + "`mod-list.json`" + ` the first time it starts with a mods directory.

## Things you can try:
- Start the game once, then quit and retry
- Check that ` + "`--mods-dir`" + ` points at the directory holding your mod zips`,
	}

	modNotFoundIssue = &Issue{
		id: ModNotFoundId,
		mdMsg: `
# Mod not installed!

A mod was requested that has no matching package in the mods directory.
Names are case-sensitive and versions must match exactly.

## Things you can try:
- List installed mods and versions:
~~~
$ fmm list
~~~
- Drop the version to use the latest installed one:
~~~
$ fmm sync enable flib
~~~`,
	}

	noLevelDatIssue = &Issue{
		id: NoLevelDatId,
		mdMsg: `
# Not a save file!

The archive has neither a ` + "`level.dat0`" + ` nor a ` + "`level.dat`" + ` entry, so it does not look like a save.

## Things you can try:
- Pass a file from the game's ` + "`saves`" + ` directory
- Re-save the game and retry if the file was copied while being written`,
	}

	malformedSaveIssue = &Issue{
		id: MalformedSaveId,
		mdMsg: `
# Could not read the save header!

The level data ended early or is not in the expected format.
Saves from very old or very new game versions may use a different layout.

## Things you can try:
- Load and re-save the map with your current game version
- Run with ` + "`--verbose`" + ` to see which field failed`,
	}

	campaignSaveUnsupportedIssue = &Issue{
		id: CampaignSaveUnsupportedId,
		mdMsg: `
# Campaign saves are not supported!

The save belongs to a campaign, whose header layout fmm cannot decode.
No mods were changed.

## Things you can try:
- Enable the campaign's mods by name:
~~~
$ fmm sync -o enable some-mod other-mod
~~~`,
	}

	settingsShapeIssue = &Issue{
		id: SettingsShapeId,
		mdMsg: `
# Unexpected mod-settings.dat structure!

The settings file does not have a ` + "`startup`" + ` dictionary, or the save's startup
settings are not a dictionary. The mod list was left unchanged.

## Things you can try:
- Skip settings and only sync mods:
~~~
$ fmm sync save-file --ignore-startup-settings my-save.zip
~~~
- Start the game once so it rewrites ` + "`mod-settings.dat`",
	}

	modSetNotFoundIssue = &Issue{
		id: ModSetNotFoundId,
		mdMsg: `
# Unknown mod set!

Mod sets are defined under ` + "`sets`" + ` in your config file.

## Example:
~~~cue
sets: {
	logistics: ["flib", "LtnManager@0.10.2"]
}
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Check the file location:
~~~
$ fmm config path
~~~
- Write a fresh default file:
~~~
$ fmm config init
~~~
- Fix the CUE error reported above; every key is optional`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

fmm could not write to the mods directory.

## Things you can try:
- Close the game; it may hold ` + "`mod-list.json`" + ` open
- Check the ownership of the mods directory`,
	}

	issues = map[Id]*Issue{
		modsDirNotFoundIssue.Id():         modsDirNotFoundIssue,
		modListNotFoundIssue.Id():         modListNotFoundIssue,
		modNotFoundIssue.Id():             modNotFoundIssue,
		noLevelDatIssue.Id():              noLevelDatIssue,
		malformedSaveIssue.Id():           malformedSaveIssue,
		campaignSaveUnsupportedIssue.Id(): campaignSaveUnsupportedIssue,
		settingsShapeIssue.Id():           settingsShapeIssue,
		modSetNotFoundIssue.Id():          modSetNotFoundIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		permissionDeniedIssue.Id():        permissionDeniedIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	out := slices.Collect(maps.Values(issues))
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
