package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/nearby/internal/db"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.Ping(context.Background())
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpPing {
		t.Fatalf("expected *db.Error with op PING, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped DeadlineExceeded, got %v", err)
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

// --- kv.go tests ---

func TestGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "nearby:guru:1")).
		Return(mock.Result(mock.RedisBlobString(`{"id":"1"}`)))

	s := NewStoreForTest(c)
	data, err := s.Get(context.Background(), "nearby:guru:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"id":"1"}` {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "missing")).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestGet_NetworkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k")).
		Return(mock.ErrorResult(errors.New("connection reset")))

	s := NewStoreForTest(c)
	_, err := s.Get(context.Background(), "k")
	if err == nil || errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected non-NotFound error, got %v", err)
	}
}

func TestGetMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), mock.Match("GET", "k1"), mock.Match("GET", "k2"), mock.Match("GET", "k3")).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisBlobString("a")),
			mock.Result(mock.RedisNil()),
			mock.Result(mock.RedisBlobString("c")),
		})

	s := NewStoreForTest(c)
	out, err := s.GetMulti(context.Background(), []string{"k1", "k2", "k3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}
	if string(out[0]) != "a" || out[1] != nil || string(out[2]) != "c" {
		t.Errorf("unexpected results: %q", out)
	}
}

func TestGetMulti_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisBlobString("a")),
			mock.ErrorResult(errors.New("broken pipe")),
		})

	s := NewStoreForTest(c)
	_, err := s.GetMulti(context.Background(), []string{"k1", "k2"})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpGet {
		t.Fatalf("expected *db.Error with op GET, got %v", err)
	}
}

func TestGetMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil) // client not called
	out, err := s.GetMulti(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil, got %v", out)
	}
}

func TestSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "mykey", "myvalue")).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.Set(context.Background(), "mykey", []byte("myvalue")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), mock.Match("SET", "k1", "v1"), mock.Match("SET", "k2", "v2")).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisString("OK")),
			mock.Result(mock.RedisString("OK")),
		})

	s := NewStoreForTest(c)
	err := s.SetMulti(context.Background(), []db.KVItem{
		{Key: "k1", Value: []byte("v1")},
		{Key: "k2", Value: []byte("v2")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil)
	if err := s.SetMulti(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDel_OneCommandPerKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), mock.Match("DEL", "a"), mock.Match("DEL", "b")).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(1)),
			mock.Result(mock.RedisInt64(0)),
		})

	s := NewStoreForTest(c)
	n, err := s.Del(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}
}

func TestDel_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(1)),
			mock.ErrorResult(errors.New("CLUSTERDOWN")),
		})

	s := NewStoreForTest(c)
	n, err := s.Del(context.Background(), "a", "b")
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpDel {
		t.Fatalf("expected *db.Error with op DEL, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted before the failure, got %d", n)
	}
}

func TestDel_NoKeys(t *testing.T) {
	s := NewStoreForTest(nil)
	n, err := s.Del(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("expected (0, nil), got (%d, %v)", n, err)
	}
}

func TestScan_SinglePage(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	c.EXPECT().Nodes().Return(map[string]rueidis.Client{"127.0.0.1:6379": c})

	// SCAN returns [cursor, [elements...]]
	c.EXPECT().
		Do(gomock.Any(), mock.Match("SCAN", "0", "MATCH", "nearby:guru:*", "COUNT", "500")).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(0), // cursor=0 means done
			mock.RedisArray(mock.RedisBlobString("nearby:guru:2"), mock.RedisBlobString("nearby:guru:1")),
		)))

	s := NewStoreForTest(c)
	keys, err := s.Scan(context.Background(), "nearby:guru:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 || keys[0] != "nearby:guru:1" {
		t.Fatalf("expected 2 sorted keys, got %v", keys)
	}
}

func TestScan_MultiPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	c.EXPECT().Nodes().Return(map[string]rueidis.Client{"127.0.0.1:6379": c})

	first := true
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN"
		})).
		DoAndReturn(func(_ context.Context, _ rueidis.Completed) rueidis.RedisResult {
			if first {
				first = false
				return mock.Result(mock.RedisArray(
					mock.RedisInt64(42), // cursor=42 means more
					mock.RedisArray(mock.RedisBlobString("key1")),
				))
			}
			return mock.Result(mock.RedisArray(
				mock.RedisInt64(0),
				mock.RedisArray(mock.RedisBlobString("key2")),
			))
		}).Times(2)

	s := NewStoreForTest(c)
	keys, err := s.Scan(context.Background(), "prefix:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 || keys[0] != "key1" || keys[1] != "key2" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestScan_EveryClusterNode(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	primaryA := mock.NewClient(ctrl)
	primaryB := mock.NewClient(ctrl)
	replicaB := mock.NewClient(ctrl)

	c.EXPECT().Nodes().Return(map[string]rueidis.Client{
		"10.0.0.1:6379": primaryA,
		"10.0.0.2:6379": primaryB,
		"10.0.0.3:6379": replicaB,
	})
	scanReturns := func(node *mock.Client, keys ...string) {
		elems := make([]rueidis.RedisMessage, len(keys))
		for i, k := range keys {
			elems[i] = mock.RedisBlobString(k)
		}
		node.EXPECT().
			Do(gomock.Any(), mock.Match("SCAN", "0", "MATCH", "p:*", "COUNT", "500")).
			Return(mock.Result(mock.RedisArray(mock.RedisInt64(0), mock.RedisArray(elems...))))
	}
	scanReturns(primaryA, "p:a1", "p:a2")
	scanReturns(primaryB, "p:b1")
	scanReturns(replicaB, "p:b1")

	s := NewStoreForTest(c)
	keys, err := s.Scan(context.Background(), "p:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"p:a1", "p:a2", "p:b1"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestScan_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	c.EXPECT().Nodes().Return(map[string]rueidis.Client{"127.0.0.1:6379": c})

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "SCAN" })).
		Return(mock.ErrorResult(errors.New("LOADING")))

	s := NewStoreForTest(c)
	_, err := s.Scan(context.Background(), "prefix:*")
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpScan {
		t.Fatalf("expected *db.Error with op SCAN, got %v", err)
	}
}
