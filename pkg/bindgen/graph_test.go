package bindgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluentloc/pkg/bindgen"
	"fluentloc/pkg/loader"
	"fluentloc/pkg/syntax"
)

func resource(t *testing.T, name, src string) loader.Resource {
	t.Helper()
	res, errs := syntax.Parse(src)
	require.Empty(t, errs)
	return loader.Resource{Name: name, AST: res}
}

func buildGraph(t *testing.T, resources ...loader.Resource) map[string]*bindgen.Node {
	t.Helper()
	nodes, err := bindgen.BuildGraph(resources)
	require.NoError(t, err)
	return nodes
}

func names(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	return out
}

func TestBuildGraphDirectSets(t *testing.T) {
	src := "welcome-user = Hello, { $name }!\n" +
		"about = About { -brand }\n" +
		"-brand = Fluent\n" +
		"plain = Nothing dynamic here\n"
	nodes := buildGraph(t, resource(t, "app", src))
	require.Len(t, nodes, 4)

	welcome := nodes["welcome-user"]
	assert.Equal(t, "app", welcome.Category)
	assert.False(t, welcome.Term)
	assert.ElementsMatch(t, []string{"name"}, names(welcome.Variables))
	assert.Empty(t, welcome.Dependencies)

	about := nodes["about"]
	assert.ElementsMatch(t, []string{"brand"}, names(about.Dependencies))
	assert.Empty(t, about.Variables)

	assert.True(t, nodes["brand"].Term)

	plain := nodes["plain"]
	assert.Empty(t, plain.Variables)
	assert.Empty(t, plain.Dependencies)
}

func TestBuildGraphScansSelectorAndAllVariants(t *testing.T) {
	src := "emails = { $count ->\n" +
		"    [one] One email for { $user }\n" +
		"   *[other] { $count } emails from { -brand }\n" +
		"}\n" +
		"-brand = Fluent\n"
	nodes := buildGraph(t, resource(t, "app", src))

	emails := nodes["emails"]
	assert.ElementsMatch(t, []string{"count", "user"}, names(emails.Variables))
	assert.ElementsMatch(t, []string{"brand"}, names(emails.Dependencies))
}

func TestBuildGraphAttributeOnlyMessageSkipped(t *testing.T) {
	src := "login =\n" +
		"    .tooltip = Click here\n" +
		"greeting = Hello\n"
	nodes := buildGraph(t, resource(t, "app", src))
	require.Len(t, nodes, 1)
	assert.Contains(t, nodes, "greeting")
}

func TestBuildGraphFunctionReferenceFatal(t *testing.T) {
	_, err := bindgen.BuildGraph([]loader.Resource{
		resource(t, "app", "now = Updated { NOW() }"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, bindgen.ErrUnsupportedFunction)
	assert.Contains(t, err.Error(), "now")
}

func TestBuildGraphDuplicateEntryFatal(t *testing.T) {
	_, err := bindgen.BuildGraph([]loader.Resource{
		resource(t, "app", "greeting = Hello"),
		resource(t, "extra", "greeting = Hi"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, bindgen.ErrDuplicateEntry)
	assert.Contains(t, err.Error(), "extra")
}
