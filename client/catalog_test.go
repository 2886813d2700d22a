package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_MuscleGroupsAreCached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/muscle-groups", r.URL.Path)
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "7d444840-9dc0-11d1-b245-5ffdce74fad2", "name": "Back"}]`))
	}))
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()

	first, err := c.MuscleGroups(ctx)
	require.NoError(t, err)
	second, err := c.MuscleGroups(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load(), "second listing served from cache")
	require.Len(t, first, 1)
	assert.Equal(t, "Back", first[0].Name)
}

func TestClient_ExercisesCachedPerGroup(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "8f555950-9dc0-11d1-b245-5ffdce74fad2", "name": "Deadlift", "groupId": "7d444840-9dc0-11d1-b245-5ffdce74fad2"}]`))
	}))
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()
	back := uuid.New()
	chest := uuid.New()

	_, err := c.Exercises(ctx, back)
	require.NoError(t, err)
	_, err = c.Exercises(ctx, back)
	require.NoError(t, err)
	_, err = c.Exercises(ctx, chest)
	require.NoError(t, err)

	assert.Equal(t, int32(2), hits.Load(), "one fetch per distinct group")
}
