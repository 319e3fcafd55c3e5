// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/william86370/pwck8s/internal/config"
	"github.com/william86370/pwck8s/internal/portal"
	"github.com/william86370/pwck8s/internal/ui/components"
	"github.com/william86370/pwck8s/internal/ui/styles"
	"github.com/william86370/pwck8s/internal/util"
)

// API is the subset of the portal client the widget drives.
type API interface {
	GetUser(ctx context.Context) (*portal.User, error)
	CreateUser(ctx context.Context) (*portal.User, error)
	DeleteUser(ctx context.Context) error
	CreateProject(ctx context.Context) (*portal.Project, error)
}

// Options configures a Model.
type Options struct {
	// GracePeriod is waited after a successful create or delete before the
	// display changes.
	GracePeriod time.Duration
	// PopupDuration is how long timed popups stay up.
	PopupDuration time.Duration
	// TickInterval is the countdown granularity.
	TickInterval time.Duration
	// RequestTimeout bounds each request. Zero means no deadline.
	RequestTimeout time.Duration

	DashboardURL string
	Identity     string
	ServerURL    string
	ShowHelp     bool

	// Now, OpenURL and CopyText default to the real implementations.
	Now      func() time.Time
	OpenURL  func(string) error
	CopyText func(string) error
}

// OptionsFromConfig builds widget options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		GracePeriod:    cfg.Timing.GracePeriod.Duration,
		PopupDuration:  cfg.Timing.PopupDuration.Duration,
		TickInterval:   cfg.Timing.TickInterval.Duration,
		RequestTimeout: cfg.Server.RequestTimeout.Duration,
		DashboardURL:   cfg.Server.DashboardURL,
		Identity:       cfg.Identity.UserDN,
		ServerURL:      cfg.Server.URL,
		ShowHelp:       cfg.UI.ShowHelp,
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

type sessionCheckedMsg struct {
	user *portal.User
	err  error
}

type userCreatedMsg struct {
	user *portal.User
	err  error
}

type projectCreatedMsg struct {
	project *portal.Project
	err     error
}

type userDeletedMsg struct {
	err error
}

// graceElapsedMsg ends the grace period started by the request with seq.
type graceElapsedMsg struct {
	seq    int
	target State
	user   *portal.User
}

type popupExpiredMsg struct {
	id int
}

// ConfigReloadedMsg is sent by the config watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the session widget. It is the only owner of the display state.
type Model struct {
	api   API
	opts  Options
	theme *styles.Theme

	state     State
	user      *portal.User
	countdown Countdown

	popup       *Popup
	nextPopupID int

	// graceSeq invalidates pending grace timers on reload.
	graceSeq int

	keys    KeyMap
	help    help.Model
	spinner components.Spinner
	toasts  *components.ToastManager
	toastOn bool

	width  int
	height int
}

// New creates a widget in the Checking state. Init issues the session check.
func New(api API, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OpenURL == nil {
		opts.OpenURL = util.OpenURL
	}
	if opts.CopyText == nil {
		opts.CopyText = util.CopyToClipboard
	}

	m := Model{
		api:       api,
		opts:      opts,
		theme:     styles.NewTheme(),
		state:     StateChecking,
		countdown: NewCountdown(opts.TickInterval),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   components.NewSpinner(),
		toasts:    components.NewToastManager(),
	}
	m.setState(StateChecking)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkSession(), m.spinner.Start())
}

// Update implements tea.Model. Every state transition happens here.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionCheckedMsg:
		return m.handleSessionChecked(msg)

	case userCreatedMsg:
		return m.handleUserCreated(msg)

	case projectCreatedMsg:
		m.handleProjectCreated(msg)
		return m, nil

	case userDeletedMsg:
		return m.handleUserDeleted(msg)

	case graceElapsedMsg:
		return m.handleGraceElapsed(msg)

	case popupExpiredMsg:
		if m.popup != nil && m.popup.ID == msg.id && m.popup.Policy == DismissTimed {
			m.popup = nil
		}
		return m, nil

	case TickMsg:
		cmd := m.countdown.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		if m.toasts.Prune(msg.Time) {
			return m, components.ToastTickCmd()
		}
		m.toastOn = false
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.countdown.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reload):
		return m.reload()

	case key.Matches(msg, m.keys.Login):
		return m.login()

	case key.Matches(msg, m.keys.Logout):
		return m.logout()

	case key.Matches(msg, m.keys.Open):
		if err := m.opts.OpenURL(m.opts.DashboardURL); err != nil {
			log.WithError(err).Warn("failed to open dashboard")
			cmd := m.toast(components.ToastKindWarning, "Could not open dashboard: "+err.Error())
			return m, cmd
		}
		cmd := m.toast(components.ToastKindSuccess, "Opened dashboard in browser")
		return m, cmd

	case key.Matches(msg, m.keys.Copy):
		if err := m.opts.CopyText(m.opts.DashboardURL); err != nil {
			log.WithError(err).Warn("failed to copy dashboard URL")
			cmd := m.toast(components.ToastKindWarning, "Could not copy URL: "+err.Error())
			return m, cmd
		}
		cmd := m.toast(components.ToastKindSuccess, "Dashboard URL copied")
		return m, cmd
	}
	return m, nil
}

// reload is the equivalent of reloading the page: every control comes
// back, the popup closes and the session is checked again.
func (m Model) reload() (tea.Model, tea.Cmd) {
	log.WithField("from", m.state.String()).Info("reloading session state")
	m.popup = nil
	m.user = nil
	m.graceSeq++
	m.countdown.Stop()
	m.setState(StateChecking)
	return m, m.checkSession()
}

func (m Model) login() (tea.Model, tea.Cmd) {
	m.setState(StateProvisioning)
	popupCmd := m.showPopup(provisioningPopup(m.opts.PopupDuration))
	return m, tea.Batch(popupCmd, m.createUser(), m.createProject())
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	m.setState(StateDeleting)
	popupCmd := m.showPopup(deletingPopup(m.opts.PopupDuration))
	return m, tea.Batch(popupCmd, m.deleteUser())
}

// =============================================================================
// RESPONSE HANDLING
// =============================================================================

func (m Model) handleSessionChecked(msg sessionCheckedMsg) (tea.Model, tea.Cmd) {
	if m.state != StateChecking {
		return m, nil
	}

	switch {
	case msg.err == nil && msg.user.HasSession():
		m.user = msg.user
		m.setState(StateLoggedIn)
		log.WithFields(log.Fields{
			"user_id":    msg.user.UserID,
			"expiration": msg.user.ExpirationTime,
		}).Info("existing session found")
		cmd := m.countdown.Start(msg.user.ExpirationTime, m.opts.Now())
		return m, cmd

	case msg.err == nil:
		m.setState(StateLoggedOut)
		log.Info("no active session")
		return m, nil

	case errors.Is(msg.err, portal.ErrUnauthorized):
		logRequestError(msg.err).Warn("session check rejected")
		m.setState(StateUnauthorized)
		cmd := m.showPopup(unauthorizedPopup())
		return m, cmd

	default:
		logRequestError(msg.err).Error("session check failed")
		m.setState(StateUnavailable)
		cmd := m.showPopup(maintenancePopup())
		return m, cmd
	}
}

func (m Model) handleUserCreated(msg userCreatedMsg) (tea.Model, tea.Cmd) {
	if m.state != StateProvisioning {
		return m, nil
	}
	if msg.err != nil {
		logRequestError(msg.err).Error("failed to create user")
		m.closePopup(PopupProvisioning)
		m.setState(StateLoggedOut)
		return m, nil
	}
	if !msg.user.HasSession() {
		log.Error("user creation returned an empty user id")
		m.closePopup(PopupProvisioning)
		m.setState(StateLoggedOut)
		return m, nil
	}

	log.WithFields(log.Fields{
		"user_id":    msg.user.UserID,
		"expiration": msg.user.ExpirationTime,
	}).Info("user created")
	cmd := m.afterGrace(StateLoggedIn, msg.user)
	return m, cmd
}

// handleProjectCreated only logs. A failed project does not undo the user.
func (m Model) handleProjectCreated(msg projectCreatedMsg) {
	if msg.err != nil {
		logRequestError(msg.err).Error("failed to create project")
		return
	}
	log.WithFields(log.Fields{
		"project_id": msg.project.ProjectID,
		"cluster_id": msg.project.ClusterID,
	}).Info("project created")
}

func (m Model) handleUserDeleted(msg userDeletedMsg) (tea.Model, tea.Cmd) {
	if m.state != StateDeleting {
		return m, nil
	}
	if msg.err != nil {
		// Back to LoggedIn; the countdown was never stopped.
		logRequestError(msg.err).Error("failed to delete user")
		m.closePopup(PopupDeleting)
		m.setState(StateLoggedIn)
		return m, nil
	}

	log.Info("user deleted")
	cmd := m.afterGrace(StateLoggedOut, nil)
	return m, cmd
}

func (m Model) handleGraceElapsed(msg graceElapsedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.graceSeq {
		return m, nil
	}

	switch msg.target {
	case StateLoggedIn:
		m.user = msg.user
		m.setState(StateLoggedIn)
		cmd := m.countdown.Start(msg.user.ExpirationTime, m.opts.Now())
		return m, cmd
	case StateLoggedOut:
		m.user = nil
		m.countdown.Stop()
		m.setState(StateLoggedOut)
	}
	return m, nil
}

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		cmd := m.toast(components.ToastKindWarning, "Config reload failed: "+util.FirstLine(msg.Err.Error()))
		return m, cmd
	}

	next := OptionsFromConfig(msg.Config)
	m.opts.GracePeriod = next.GracePeriod
	m.opts.PopupDuration = next.PopupDuration
	m.opts.TickInterval = next.TickInterval
	m.opts.DashboardURL = next.DashboardURL
	m.opts.ShowHelp = next.ShowHelp
	m.countdown.SetInterval(next.TickInterval)
	m.keys.applyState(m.state, m.opts.DashboardURL != "")

	cmd := m.toast(components.ToastKindStatus, "Configuration reloaded")
	return m, cmd
}

// =============================================================================
// STATE HELPERS
// =============================================================================

func (m *Model) setState(s State) {
	m.state = s
	m.keys.applyState(s, m.opts.DashboardURL != "")

	switch s {
	case StateChecking:
		m.spinner.SetMessage("Checking session...")
	case StateProvisioning:
		m.spinner.SetMessage(provisioningTitle)
	case StateDeleting:
		m.spinner.SetMessage(deletingTitle)
	default:
		m.spinner.SetMessage("")
	}
}

// showPopup replaces the current popup. Timed popups return their
// expiry timer.
func (m *Model) showPopup(p Popup) tea.Cmd {
	m.nextPopupID++
	p.ID = m.nextPopupID
	m.popup = &p
	if p.Policy != DismissTimed {
		return nil
	}
	return after(p.Duration, popupExpiredMsg{id: p.ID})
}

func (m *Model) closePopup(kind PopupKind) {
	if m.popup != nil && m.popup.Kind == kind {
		m.popup = nil
	}
}

func (m *Model) afterGrace(target State, user *portal.User) tea.Cmd {
	m.graceSeq++
	return after(m.opts.GracePeriod, graceElapsedMsg{seq: m.graceSeq, target: target, user: user})
}

func (m *Model) toast(kind components.ToastKind, text string) tea.Cmd {
	m.toasts.Add(kind, text, m.opts.Now())
	if m.toastOn {
		return nil
	}
	m.toastOn = true
	return components.ToastTickCmd()
}

// after delivers msg once d has passed. A non-positive d delivers it on the
// next loop iteration.
func after(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func logRequestError(err error) *log.Entry {
	fields := log.Fields{}
	var reqErr *portal.RequestError
	if errors.As(err, &reqErr) {
		fields["op"] = reqErr.Op
		fields["status"] = reqErr.Status
		fields["request_id"] = reqErr.RequestID
	}
	return log.WithFields(fields).WithError(err)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the current display state.
func (m Model) State() State { return m.state }

// User returns the session record, nil when logged out.
func (m Model) User() *portal.User { return m.user }

// Popup returns the popup being shown, if any.
func (m Model) Popup() (Popup, bool) {
	if m.popup == nil {
		return Popup{}, false
	}
	return *m.popup, true
}

// Keys returns the current key bindings with their enabled flags.
func (m Model) Keys() KeyMap { return m.keys }

// Countdown returns the countdown.
func (m Model) Countdown() Countdown { return m.countdown }

// Toasts returns the visible toasts.
func (m Model) Toasts() []components.Toast { return m.toasts.Toasts() }
