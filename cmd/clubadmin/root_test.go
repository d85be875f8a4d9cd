package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/club_admin/internal/session"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := (&cli{}).newRootCmd()

	for _, path := range [][]string{
		{"login"},
		{"logout"},
		{"template", "show"},
		{"template", "copy"},
		{"sync"},
		{"sync", "retry"},
		{"sync", "history"},
		{"week"},
		{"slot", "set"},
		{"reservation", "cancel"},
		{"reservation", "confirm"},
		{"bot"},
		{"daemon"},
		{"migrate"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	sync, _, err := root.Find([]string{"sync"})
	require.NoError(t, err)
	for _, flag := range []string{"set", "copy", "duration", "reset", "dry-run", "extend-only", "empty-days"} {
		assert.NotNil(t, sync.Flags().Lookup(flag), flag)
	}
}

func TestExecuteClosesDepsOnError(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://127.0.0.1:1")
	t.Setenv("LOG_LEVEL", "error")

	c := &cli{}
	root := c.newRootCmd()

	closed := 0
	root.AddCommand(&cobra.Command{
		Use: "fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.deps = &deps{closers: []func(){func() { closed++ }}}
			return errors.New("sync finished with failures")
		},
	})
	root.SetArgs([]string{"fail"})

	err := execute(context.Background(), c, root)
	require.Error(t, err)
	assert.Equal(t, 1, closed)
	assert.Nil(t, c.deps)
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "❌ Нет активной сессии. Выполните clubadmin login", errorText(fmt.Errorf("open session: %w", session.ErrNoSession)))
	assert.Equal(t, "❌ Ошибка: invalid field id \"x\"", errorText(errors.New(`invalid field id "x"`)))
}
