package fs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/nucleus/model/report"
	"github.com/viant/nucleus/progress"
	"github.com/viant/nucleus/service/dao"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	srv, err := New(ctx, afs.New(), "mem://localhost/reports/fs_test")
	require.NoError(t, err)
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	reports := []*report.Report{
		{ID: "r1", Image: "boot", Status: "normal", Elapsed: 1200, StartedAt: started, Progress: progress.Counters{Created: 2, Terminated: 2}},
		{ID: "r2", Image: "boot", Status: "deadlock", StartedAt: started.Add(time.Second), Transcript: []string{"halt: deadlock"}},
		{ID: "r3", Image: "disk", Status: "normal", StartedAt: started.Add(2 * time.Second)},
	}
	for _, r := range reports {
		require.NoError(t, srv.Save(ctx, r))
	}

	loaded, err := srv.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Progress.Created)
	assert.EqualValues(t, 1200, loaded.Elapsed)

	testCases := []struct {
		description string
		parameters  []*dao.Parameter
		expect      []string
	}{
		{description: "all", expect: []string{"r1", "r2", "r3"}},
		{description: "by status", parameters: []*dao.Parameter{dao.NewParameter("Status", "normal")}, expect: []string{"r1", "r3"}},
		{description: "by status and image", parameters: []*dao.Parameter{dao.NewParameter("Status", "normal"), dao.NewParameter("Image", "disk")}, expect: []string{"r3"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			list, err := srv.List(ctx, testCase.parameters...)
			require.NoError(t, err)
			var ids []string
			for _, r := range list {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, testCase.expect, ids)
		})
	}

	require.NoError(t, srv.Delete(ctx, "r2"))
	_, err = srv.Load(ctx, "r2")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, srv.Delete(ctx, "r2"), dao.ErrNotFound)
	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &report.Report{}), dao.ErrInvalidID)
}
