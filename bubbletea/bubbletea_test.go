package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/studypal"
	bt "github.com/fwojciec/studypal/bubbletea"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, send bt.SendFunc, opts ...bt.Option) bt.Model {
	t.Helper()
	return initModelWithSize(t, send, 80, 24, opts...)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, send bt.SendFunc, width, height int, opts ...bt.Option) bt.Model {
	t.Helper()
	m := bt.New(send, &studypal.Session{}, studypal.DefaultTheme(), opts...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// nopSend is a send function that returns an empty reply.
func nopSend(_ context.Context, _ *studypal.Session, _ string, _ func(studypal.Event)) (studypal.Reply, error) {
	return studypal.Reply{}, nil
}
