package loader_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluentloc/pkg/bundle"
	"fluentloc/pkg/loader"
)

// catalogRoot builds a resource root with a default tier, an en-US
// directory matching it, and a French override of greeting only.
func catalogRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	defaults := "greeting = Hello\nfarewell = Bye"
	writeCatalog(t, filepath.Join(root, "default"), "app.ftl", defaults)
	writeCatalog(t, filepath.Join(root, "en-US"), "app.ftl", defaults)
	writeCatalog(t, filepath.Join(root, "fr"), "app.ftl", "greeting = Bonjour")
	return root
}

func TestLoadWithConfigOverrideAndFallback(t *testing.T) {
	holder, err := loader.LoadWithConfig(loader.Config{
		BasePath:        catalogRoot(t),
		DefaultLanguage: "en_US",
	})
	require.NoError(t, err)

	assert.Equal(t, "en-US", holder.DefaultLanguage())
	assert.ElementsMatch(t, []string{"en-US", "fr"}, holder.Languages())

	// language-specific entry overrides the default
	assert.Equal(t, "Bonjour", loader.Localize(holder, "fr", "greeting", nil))
	// entries the language does not define fall back to the inherited default
	assert.Equal(t, "Bye", loader.Localize(holder, "fr", "farewell", nil))
	// unknown languages fall back to the default bundle entirely
	assert.Equal(t, "Hello", loader.Localize(holder, "de", "greeting", nil))
	assert.Equal(t, "Hello", loader.Localize(holder, "", "greeting", nil))
}

func TestLoadWithConfigDuplicateKeyAcrossFiles(t *testing.T) {
	root := catalogRoot(t)
	// a second French catalog redefining greeting; overriding the default
	// would mask this, the verification bundle must not
	writeCatalog(t, filepath.Join(root, "fr"), "extra.ftl", "greeting = Salut")

	_, err := loader.LoadWithConfig(loader.Config{
		BasePath:        root,
		DefaultLanguage: "en_US",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, bundle.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "fr")
	assert.Contains(t, err.Error(), `"greeting"`)
}

func TestLoadWithConfigSkipsInvalidLanguageDirectories(t *testing.T) {
	root := catalogRoot(t)
	writeCatalog(t, filepath.Join(root, "not a language!"), "app.ftl", "greeting = ???")

	holder, err := loader.LoadWithConfig(loader.Config{
		BasePath:        root,
		DefaultLanguage: "en_US",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en-US", "fr"}, holder.Languages())
}

func TestLoadWithConfigInvalidDefaultLanguage(t *testing.T) {
	_, err := loader.LoadWithConfig(loader.Config{
		BasePath:        catalogRoot(t),
		DefaultLanguage: "!!not-a-language!!",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid default language")
}

func TestLoadWithConfigMissingDefaultTier(t *testing.T) {
	root := t.TempDir()
	writeCatalog(t, filepath.Join(root, "en-US"), "app.ftl", "greeting = Hello")

	_, err := loader.LoadWithConfig(loader.Config{
		BasePath:        root,
		DefaultLanguage: "en_US",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read localization directory")
}

func TestLoadWithConfigMissingDefaultLanguageDirectory(t *testing.T) {
	root := t.TempDir()
	writeCatalog(t, filepath.Join(root, "default"), "app.ftl", "greeting = Hello")
	writeCatalog(t, filepath.Join(root, "fr"), "app.ftl", "greeting = Bonjour")

	_, err := loader.LoadWithConfig(loader.Config{
		BasePath:        root,
		DefaultLanguage: "en_US",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default language")
}

func TestLoadFromEnvironment(t *testing.T) {
	root := catalogRoot(t)
	t.Setenv("TRANSLATION_DIR", root)
	t.Setenv("DEFAULT_LANG", "en_US")

	holder, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", loader.Localize(holder, "fr", "greeting", nil))
}

func TestLocalizeDegradesOnFormattingErrors(t *testing.T) {
	root := t.TempDir()
	src := "welcome-user = Hello, { $name }!"
	writeCatalog(t, filepath.Join(root, "default"), "app.ftl", src)
	writeCatalog(t, filepath.Join(root, "en-US"), "app.ftl", src)

	holder, err := loader.LoadWithConfig(loader.Config{
		BasePath:        root,
		DefaultLanguage: "en_US",
	})
	require.NoError(t, err)

	// missing argument: logged, generic failure string returned
	got := loader.Localize(holder, "en-US", "welcome-user", nil)
	assert.Equal(t, `Failed to localize the "welcome-user" response.`, got)

	// missing entry: same degraded behavior, never a panic
	got = loader.Localize(holder, "en-US", "no-such-entry", nil)
	assert.Equal(t, `Failed to localize the "no-such-entry" response.`, got)
}

func TestLocalizeWithArguments(t *testing.T) {
	root := t.TempDir()
	src := "welcome-user = Hello, { $name }!"
	writeCatalog(t, filepath.Join(root, "default"), "app.ftl", src)
	writeCatalog(t, filepath.Join(root, "en-US"), "app.ftl", src)

	holder, err := loader.LoadWithConfig(loader.Config{
		BasePath:        root,
		DefaultLanguage: "en_US",
	})
	require.NoError(t, err)

	args := bundle.NewArgs()
	args.Set("name", bundle.From("Ada"))
	assert.Equal(t, "Hello, Ada!", loader.Localize(holder, "", "welcome-user", args))
}

func TestHolderBundlesAreIndependent(t *testing.T) {
	holder, err := loader.LoadWithConfig(loader.Config{
		BasePath:        catalogRoot(t),
		DefaultLanguage: "en_US",
	})
	require.NoError(t, err)

	// the French override must not leak into the default bundle
	msg, ok := holder.DefaultBundle().Message("greeting")
	require.True(t, ok)
	text, errs := holder.DefaultBundle().FormatPattern(msg.Value, nil)
	require.Empty(t, errs)
	assert.Equal(t, "Hello", text)
}
