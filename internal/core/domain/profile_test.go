package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modsync/internal/core/domain"
)

func TestProfileData_AddMod(t *testing.T) {
	var p domain.ProfileData

	require.NoError(t, p.AddMod(domain.Mod{Project: domain.ModrinthProject("abc")}))
	assert.Equal(t, domain.ProjectTypeMod, p.Mods[0].ProjectType)

	err := p.AddMod(domain.Mod{Project: domain.ModrinthProject("abc")})
	require.ErrorIs(t, err, domain.ErrAlreadyAdded)

	err = p.AddMod(domain.Mod{Project: domain.ModrinthProject("def"), Version: domain.CurseForgeFile(1)})
	require.ErrorIs(t, err, domain.ErrServiceMismatch)
	assert.Len(t, p.Mods, 1)
}

func TestProfileData_RemovePinExclude(t *testing.T) {
	var p domain.ProfileData
	require.NoError(t, p.AddMod(domain.Mod{Project: domain.CurseForgeProject(1)}))

	require.NoError(t, p.Pin(domain.CurseForgeProject(1), domain.CurseForgeFile(9)))
	assert.True(t, p.Mods[0].Pinned())

	require.ErrorIs(t, p.Pin(domain.CurseForgeProject(1), domain.ModrinthVersion("x")), domain.ErrServiceMismatch)
	require.ErrorIs(t, p.Pin(domain.CurseForgeProject(2), nil), domain.ErrModNotFound)

	p.SetExcluded(domain.ModrinthProject("from-pack"), true)
	require.Len(t, p.Mods, 2)
	assert.True(t, p.Mods[1].Exclude)

	removed, err := p.RemoveMod(domain.CurseForgeProject(1))
	require.NoError(t, err)
	assert.Equal(t, domain.CurseForgeFile(9), removed.Version)
	assert.Len(t, p.Mods, 1)

	_, err = p.RemoveMod(domain.CurseForgeProject(1))
	require.ErrorIs(t, err, domain.ErrModNotFound)
}

func TestProfileData_JSON(t *testing.T) {
	p := domain.ProfileData{
		GameVersion: "1.20.1",
		Mods: []domain.Mod{
			{Project: domain.ModrinthProject("abc"), Name: "ABC", ProjectType: domain.ProjectTypeMod},
		},
		Modpack: &domain.Modpack{
			Mod:              domain.Mod{Project: domain.CurseForgeProject(5), Name: "Pack", ProjectType: domain.ProjectTypeModpack},
			InstallOverrides: true,
		},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"loader"`)
	assert.Contains(t, string(data), `"install_overrides":true`)

	var decoded domain.ProfileData
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)
}

func TestProfileData_JSONRejectsDuplicateProjects(t *testing.T) {
	var p domain.ProfileData
	err := json.Unmarshal([]byte(`{"game_version":"1.20.1","mods":[{"modrinth":"abc"},{"modrinth":"abc","version":"v2"}]}`), &p)
	require.ErrorIs(t, err, domain.ErrDuplicateMod)

	err = json.Unmarshal([]byte(`{"game_version":"1.20.1","mods":[{"modrinth":"abc"},{"modrinth":"def"}]}`), &p)
	require.NoError(t, err)
	assert.Len(t, p.Mods, 2)
}

func TestConfig_Active(t *testing.T) {
	var c domain.Config
	_, err := c.Active()
	require.ErrorIs(t, err, domain.ErrNoProfiles)

	require.NoError(t, c.AddProfile(domain.ProfileRef{Name: "a", Path: "/a"}))
	require.NoError(t, c.AddProfile(domain.ProfileRef{Name: "b", Path: "/b"}))
	require.ErrorIs(t, c.AddProfile(domain.ProfileRef{Name: "a"}), domain.ErrProfileExists)

	active, err := c.Active()
	require.NoError(t, err)
	assert.Equal(t, "b", active.Name)

	require.NoError(t, c.Select("a"))
	require.ErrorIs(t, c.Select("zzz"), domain.ErrUnknownProfile)

	c.ActiveProfile = 7
	_, err = c.Active()
	require.ErrorIs(t, err, domain.ErrUnknownProfile)
}

func TestServerInstallerBucket(t *testing.T) {
	bucket, err := domain.ServerInstallerBucket(domain.LoaderFabric)
	require.NoError(t, err)
	assert.Contains(t, bucket, "fabric")

	_, err = domain.ServerInstallerBucket(domain.LoaderUnknown)
	require.ErrorIs(t, err, domain.ErrServerUnsupported)
}

func TestVersion_Supports(t *testing.T) {
	v := domain.Version{GameVersions: []string{"1.20.1"}, Loaders: []domain.Loader{domain.LoaderFabric}}

	assert.True(t, v.Supports("1.20.1", domain.LoaderFabric))
	assert.True(t, v.Supports("1.20.1", domain.LoaderQuilt))
	assert.False(t, v.Supports("1.20.1", domain.LoaderForge))
	assert.False(t, v.Supports("1.19.2", domain.LoaderFabric))
	assert.True(t, v.Supports("", domain.LoaderUnknown))
}
