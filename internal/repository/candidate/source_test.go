package candidate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/nearby/internal/domain/marker"
	"github.com/kailas-cloud/nearby/internal/usecase/search"
)

func TestKeyspace(t *testing.T) {
	ks := NewKeyspace("")
	assert.Equal(t, DefaultPrefix, ks.Prefix())
	assert.Equal(t, "nearby:guru:42", ks.Key(marker.Guru, "42"))
	assert.Equal(t, "nearby:gig:*", ks.Pattern(marker.Gig))
	assert.Equal(t, "42", ks.ID(marker.Guru, "nearby:guru:42"))
	assert.Equal(t, "a:b", ks.ID(marker.Guru, "nearby:guru:a:b"))
}

func TestKeyspace_EscapesGlobInPrefix(t *testing.T) {
	ks := NewKeyspace("app[1]*:")
	assert.Equal(t, `app\[1\]\*:guru:*`, ks.Pattern(marker.Guru))
}

func TestSource_FetchAll_OnlyOwnType(t *testing.T) {
	ms := newMockStore()
	ms.put("nearby:guru:b", `{"name":"B"}`)
	ms.put("nearby:guru:a", `{"name":"A"}`)
	ms.put("nearby:gig:x", `{"title":"X"}`)
	ms.put("other:guru:z", `{"name":"Z"}`)

	src := NewSource(ms, NewKeyspace(""), marker.Guru)
	raws, err := src.FetchAll(context.Background(), search.FetchHints{})
	require.NoError(t, err)

	require.Len(t, raws, 2)
	assert.Equal(t, "a", raws[0].Key)
	assert.Equal(t, "b", raws[1].Key)
	for _, r := range raws {
		assert.Equal(t, marker.Guru, r.Type)
	}
	assert.JSONEq(t, `{"name":"A"}`, string(raws[0].Doc))
}

func TestSource_FetchAll_Batches(t *testing.T) {
	ms := newMockStore()
	for i := 0; i < 25; i++ {
		ms.put(fmt.Sprintf("nearby:gig:%03d", i), `{}`)
	}

	src := NewSource(ms, NewKeyspace(""), marker.Gig).WithBatchSize(10)
	raws, err := src.FetchAll(context.Background(), search.FetchHints{})
	require.NoError(t, err)
	assert.Len(t, raws, 25)
	assert.Equal(t, 3, ms.getCalls)
}

func TestSource_FetchAll_SkipsVanishedKeys(t *testing.T) {
	ms := newMockStore()
	ms.scanFn = func(context.Context, string) ([]string, error) {
		return []string{"nearby:guru:gone", "nearby:guru:here", "nearby:guru:here"}, nil
	}
	ms.put("nearby:guru:here", `{}`)

	raws, err := NewSource(ms, NewKeyspace(""), marker.Guru).FetchAll(context.Background(), search.FetchHints{})
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "here", raws[0].Key)
}

func TestSource_FetchAll_Empty(t *testing.T) {
	raws, err := NewSource(newMockStore(), NewKeyspace(""), marker.Guru).
		FetchAll(context.Background(), search.FetchHints{})
	require.NoError(t, err)
	assert.Empty(t, raws)
}

func TestSource_FetchAll_ScanError(t *testing.T) {
	boom := errors.New("scan failed")
	ms := newMockStore()
	ms.scanFn = func(context.Context, string) ([]string, error) { return nil, boom }

	_, err := NewSource(ms, NewKeyspace(""), marker.Guru).FetchAll(context.Background(), search.FetchHints{})
	assert.ErrorIs(t, err, boom)
}

func TestSource_FetchAll_GetError(t *testing.T) {
	boom := errors.New("get failed")
	ms := newMockStore()
	ms.put("nearby:guru:a", `{}`)
	ms.getMultiFn = func(context.Context, []string) ([][]byte, error) { return nil, boom }

	_, err := NewSource(ms, NewKeyspace(""), marker.Guru).FetchAll(context.Background(), search.FetchHints{})
	assert.ErrorIs(t, err, boom)
}

func TestSource_FetchAll_Cancelled(t *testing.T) {
	ms := newMockStore()
	ms.put("nearby:guru:a", `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource(ms, NewKeyspace(""), marker.Guru).FetchAll(ctx, search.FetchHints{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, ms.getCalls)
}

func TestSource_Type(t *testing.T) {
	assert.Equal(t, marker.Gig, NewSource(newMockStore(), NewKeyspace(""), marker.Gig).Type())
}
