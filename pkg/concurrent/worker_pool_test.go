package concurrent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsEveryJob(t *testing.T) {
	files := []string{"a.wheel", "b.wheel", "c.wheel", "d.wheel"}
	pool := NewWorkerPool(2, len(files))
	pool.Start(func(job EvalJob) EvalResult {
		return EvalResult{WheelFile: job.WheelFile, Overcharged: 1, Total: 2}
	})
	for _, f := range files {
		pool.AddJob(EvalJob{WheelFile: f})
	}
	pool.Close()
	pool.Wait()

	seen := make(map[string]bool)
	overcharged, total := 0, 0
	for res := range pool.Results() {
		require.NoError(t, res.Err)
		seen[res.WheelFile] = true
		overcharged += res.Overcharged
		total += res.Total
	}
	require.Len(t, seen, len(files))
	require.Equal(t, 4, overcharged)
	require.Equal(t, 8, total)
}
