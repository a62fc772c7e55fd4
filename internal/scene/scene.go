// Package scene implements the five full-screen steps of the simulation.
package scene

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/doxsim/internal/anim"
	"github.com/verte-zerg/doxsim/internal/model"
)

// Scene is one mounted step. It owns its animations; Stop cancels all of them.
type Scene interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	Title() string
	Stop()
}

// Env is what a scene receives when it is mounted.
type Env struct {
	Clock  anim.Clock
	Rand   *rand.Rand
	Pacing model.Pacing
	Data   model.Bundle
	// Done signals that the scene finished. Only the first call has an effect.
	Done func() tea.Cmd
}

// Builder constructs a scene for a mount.
type Builder func(Env) Scene

func (e Env) rand() *rand.Rand {
	if e.Rand == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e.Rand
}

func (e Env) done() tea.Cmd {
	if e.Done == nil {
		return nil
	}
	return e.Done()
}

type stopper interface {
	Stop()
}

type timers []stopper

func (ts timers) Stop() {
	for _, t := range ts {
		t.Stop()
	}
}
