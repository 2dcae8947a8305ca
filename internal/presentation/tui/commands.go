package tui

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/labomak/dashboard/internal/application/dashboard"
	"github.com/labomak/dashboard/internal/application/validation"
)

// loadedMsg reports a finished module activation, tab switch or edit load.
type loadedMsg struct{ err error }

type submittedMsg struct {
	notice string
	err    error
}

type deletedMsg struct{ err error }

type probedMsg struct {
	result validation.ProbeResult
	err    error
}

func activateCmd(ctx context.Context, shell *dashboard.Shell, key string) tea.Cmd {
	return func() tea.Msg {
		_, err := shell.Activate(ctx, key)
		if err != nil {
			log.Printf("[tui] %s yüklenemedi: %v", key, err)
		}
		return loadedMsg{err: err}
	}
}

func switchTabCmd(ctx context.Context, em dashboard.EntityModule, tab string) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: em.SwitchTab(ctx, tab)}
	}
}

func editCmd(ctx context.Context, em dashboard.EntityModule, key int64) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: em.Edit(ctx, key)}
	}
}

func submitCmd(ctx context.Context, em dashboard.EntityModule) tea.Cmd {
	return func() tea.Msg {
		notice, err := em.Submit(ctx)
		if err != nil {
			log.Printf("[tui] %s kaydedilemedi: %v", em.Key(), err)
		}
		return submittedMsg{notice: notice, err: err}
	}
}

func deleteCmd(ctx context.Context, em dashboard.EntityModule, key int64) tea.Cmd {
	return func() tea.Msg {
		err := em.Delete(ctx, key)
		if err != nil {
			log.Printf("[tui] %s %d silinemedi: %v", em.Key(), key, err)
		}
		return deletedMsg{err: err}
	}
}

func probeCmd(ctx context.Context, em dashboard.EntityModule) tea.Cmd {
	return func() tea.Msg {
		result, err := em.ProbeImage(ctx)
		return probedMsg{result: result, err: err}
	}
}
