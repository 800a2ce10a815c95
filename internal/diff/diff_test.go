package diff

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/k8sdeployer/internal/output"
	"github.com/hupe1980/k8sdeployer/internal/ui"
)

type fakeManifest struct {
	name string
	data string
	err  error
}

func (f fakeManifest) Name() string { return f.name }

func (f fakeManifest) RenderManifest() ([]byte, error) {
	return []byte(f.data), f.err
}

func TestCompute_Identical(t *testing.T) {
	doc := "apiVersion: v1\nkind: ConfigMap\n"
	result, err := Compute(doc, doc, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, result.HasDifferences)
	assert.Empty(t, result.Hunks)
}

func TestCompute_Different(t *testing.T) {
	oldDoc := "kind: Service\nmetadata:\n  name: orders-api\n"
	newDoc := "kind: Service\nmetadata:\n  name: orders-web\n"

	result, err := Compute(oldDoc, newDoc, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, result.HasDifferences)
	assert.Len(t, result.Hunks, 1)
	assert.Contains(t, result.Unified, "-  name: orders-api")
	assert.Contains(t, result.Unified, "+  name: orders-web")
	assert.Contains(t, result.Unified, "--- on-disk")
	assert.Contains(t, result.Unified, "+++ generated")
}

func TestCompute_EmptySides(t *testing.T) {
	doc := "kind: Namespace\n"

	added, err := Compute("", doc, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, added.HasDifferences)

	removed, err := Compute(doc, "", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, removed.HasDifferences)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	dw := output.NewDirWriter(dir)

	require.NoError(t, os.WriteFile(dw.Path("orders", "same"), []byte("a: 1\n"), 0o600))
	require.NoError(t, os.WriteFile(dw.Path("orders", "changed"), []byte("a: 1\n"), 0o600))

	diffs, err := Files(dw, "orders", []output.Manifest{
		fakeManifest{name: "same", data: "a: 1\n"},
		fakeManifest{name: "changed", data: "a: 2\n"},
		fakeManifest{name: "new", data: "a: 3\n"},
	}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, diffs, 3)

	assert.Equal(t, StatusUnchanged, diffs[0].Status)
	assert.Equal(t, StatusModified, diffs[1].Status)
	assert.Equal(t, StatusAdded, diffs[2].Status)
	assert.Equal(t, filepath.Join(dir, "orders-new.yaml"), diffs[2].Path)
	assert.Contains(t, diffs[1].Result.Unified, "+a: 2")
	assert.True(t, Changed(diffs))
	assert.False(t, Changed(diffs[:1]))
}

func TestFiles_RenderError(t *testing.T) {
	boom := errors.New("boom")

	_, err := Files(output.NewDirWriter(t.TempDir()), "orders",
		[]output.Manifest{fakeManifest{name: "bad", err: boom}}, DefaultOptions())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "rendering bad")
}

func TestFiles_ReadError(t *testing.T) {
	dir := t.TempDir()
	dw := output.NewDirWriter(dir)

	// A directory where the file should be cannot be read as a file.
	require.NoError(t, os.Mkdir(dw.Path("orders", "x"), 0o750))

	_, err := Files(dw, "orders", []output.Manifest{fakeManifest{name: "x", data: "a: 1\n"}}, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}

func TestWrite_NoColor(t *testing.T) {
	result, err := Compute("line1\nline2\n", "line1\nline3\n", DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	Write(ui.New(&buf, true), result)

	out := buf.String()
	assert.Contains(t, out, "-line2")
	assert.Contains(t, out, "+line3")
	assert.NotContains(t, out, "\033[")
}

func TestWrite_Color(t *testing.T) {
	result, err := Compute("line1\nline2\n", "line1\nline3\n", DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	Write(ui.New(&buf, false), result)

	assert.Contains(t, buf.String(), "\033[31m-line2")
	assert.Contains(t, buf.String(), "\033[32m+line3")
}

func TestWrite_NoDifferences(t *testing.T) {
	var buf bytes.Buffer
	Write(ui.New(&buf, true), &Result{})
	assert.Equal(t, "No differences found.\n", buf.String())
}

const (
	svcDoc = "apiVersion: v1\nkind: Service\nmetadata:\n  name: orders-api\n  namespace: orders\nspec:\n  ports:\n  - port: 8080\n"
	cmDoc  = "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: orders-api\n  namespace: orders\ndata:\n  A: \"1\"\n"
	nsDoc  = "apiVersion: v1\nkind: Namespace\nmetadata:\n  name: orders\n"
)

func TestStream(t *testing.T) {
	// The saved stream uses a different key order and indentation for the
	// Service; canonical comparison hides that.
	saved := "---\nkind: Service\napiVersion: v1\nspec:\n    ports:\n    - port: 8080\nmetadata:\n    namespace: orders\n    name: orders-api\n" +
		"---\n" + cmDoc +
		"---\napiVersion: v1\nkind: Secret\nmetadata:\n  name: orders-db\n  namespace: orders\n"

	changedCM := "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: orders-api\n  namespace: orders\ndata:\n  A: \"2\"\n"

	diffs, err := Stream([]byte(saved), []output.Manifest{
		fakeManifest{name: "orders-api-service", data: svcDoc},
		fakeManifest{name: "orders-api-config", data: changedCM},
		fakeManifest{name: "namespace-orders", data: nsDoc},
	}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, diffs, 4)

	assert.Equal(t, StatusUnchanged, diffs[0].Status)
	assert.Equal(t, "Service/orders/orders-api", diffs[0].Path)

	assert.Equal(t, StatusModified, diffs[1].Status)
	assert.Contains(t, diffs[1].Result.Unified, "-  A: \"1\"")
	assert.Contains(t, diffs[1].Result.Unified, "+  A: \"2\"")

	assert.Equal(t, StatusAdded, diffs[2].Status)
	assert.Equal(t, "Namespace/orders", diffs[2].Path)

	assert.Equal(t, StatusRemoved, diffs[3].Status)
	assert.Equal(t, "Secret/orders/orders-db", diffs[3].Path)
	assert.Contains(t, diffs[3].Result.Unified, "-kind: Secret")

	assert.True(t, Changed(diffs))
}

func TestStream_Identical(t *testing.T) {
	diffs, err := Stream([]byte(output.JoinDocuments([][]byte{[]byte(nsDoc), []byte(svcDoc)})), []output.Manifest{
		fakeManifest{name: "namespace-orders", data: nsDoc},
		fakeManifest{name: "orders-api-service", data: svcDoc},
	}, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, Changed(diffs))
}

func TestStream_MultiLineValueWithNull(t *testing.T) {
	cmHead := "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: orders-api\n  namespace: orders\ndata:\n  application.yaml: |\n    server:\n      port: 8080\n"
	saved := "---\n" + cmHead + "    cache: null\n"

	diffs, err := Stream([]byte(saved), []output.Manifest{
		fakeManifest{name: "orders-api-config", data: cmHead},
	}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, diffs, 1)

	assert.Equal(t, StatusModified, diffs[0].Status)
	assert.Contains(t, diffs[0].Result.Unified, "-    cache: null")
}

func TestStream_InvalidStream(t *testing.T) {
	_, err := Stream([]byte("kind: [unclosed\n"), nil, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing stream")
}

func TestStream_ManifestWithoutKind(t *testing.T) {
	_, err := Stream(nil, []output.Manifest{fakeManifest{name: "bare", data: "a: 1\n"}}, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bare does not render a Kubernetes object")
}
