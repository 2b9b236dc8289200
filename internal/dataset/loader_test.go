package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-service/internal/storage"
)

func TestParse(t *testing.T) {
	ds, err := Parse(strings.NewReader("x1,x2,target\n1,2,3\n4,5,6\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"x1", "x2"}, ds.Columns)
	assert.Equal(t, [][]float64{{1, 2}, {4, 5}}, ds.Features)
	assert.Equal(t, []float64{3, 6}, ds.Target)
}

func TestParseTargetColumnIsCaseInsensitive(t *testing.T) {
	ds, err := Parse(strings.NewReader("Target,x\n1,2\n"))
	require.NoError(t, err)

	assert.Equal(t, []float64{1}, ds.Target)
	assert.Equal(t, [][]float64{{2}}, ds.Features)
}

func TestParseTargetPositionDoesNotMatter(t *testing.T) {
	ds, err := Parse(strings.NewReader("a,target,b\n1,2,3\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, ds.Columns)
	assert.Equal(t, [][]float64{{1, 3}}, ds.Features)
	assert.Equal(t, []float64{2}, ds.Target)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"empty input":       "",
		"no target column":  "a,b\n1,2\n",
		"no feature column": "target\n1\n",
		"ragged row":        "a,target\n1,2\n3\n",
		"non numeric cell":  "a,target\n1,banana\n",
		"no data rows":      "a,target\n",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrMalformedDataset)
		})
	}
}

func TestLoad(t *testing.T) {
	store, err := storage.NewLocalObjectStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.PutObject(ctx, "datasets", "a.csv", strings.NewReader("x,target\n1,2\n3,4\n4,5\n")))

	ds, err := Load(ctx, store, "s3://datasets/a.csv")
	require.NoError(t, err)
	assert.Len(t, ds.Features, 3)
}

func TestLoadInvalidLocation(t *testing.T) {
	store, err := storage.NewLocalObjectStore(t.TempDir())
	require.NoError(t, err)

	for _, location := range []string{"http://bucket/key", "s3://bucket", "not a url at all://"} {
		_, err := Load(context.Background(), store, location)
		assert.ErrorIs(t, err, ErrInvalidLocation, "location %q", location)
	}
}

func TestLoadMissingObject(t *testing.T) {
	store, err := storage.NewLocalObjectStore(t.TempDir())
	require.NoError(t, err)

	_, err = Load(context.Background(), store, "s3://datasets/nope.csv")
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
}
