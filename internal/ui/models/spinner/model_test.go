package spinner

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuitKeyAborts(t *testing.T) {
	m := NewModelWithMessage("working")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	final, ok := updated.(Model)
	require.True(t, ok)
	assert.True(t, final.HasError(), "a quit must surface as an error, never as a bare exit")
	assert.False(t, final.HasResult())
	assert.ErrorIs(t, final.GetError(), ErrAborted)
	assert.NotNil(t, cmd)
}

func TestResultMsgCompletes(t *testing.T) {
	m := NewModel()

	updated, _ := m.Update(ResultMsg{Result: "done"})

	final := updated.(Model)
	assert.True(t, final.HasResult())
	assert.Equal(t, "done", final.GetResult())
	assert.False(t, final.HasError())
}

func TestErrorMsgFails(t *testing.T) {
	m := NewModel()
	boom := errors.New("boom")

	updated, _ := m.Update(ErrorMsg{Err: boom})

	final := updated.(Model)
	assert.True(t, final.HasError())
	assert.ErrorIs(t, final.GetError(), boom)
}
