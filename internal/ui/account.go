package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/vitrine/internal/shop"
	"github.com/five82/vitrine/internal/state"
)

type formMode int

const (
	modeLogin formMode = iota
	modeSignUp
)

const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldPassword
	fieldCount
)

const formLabelWidth = 12

var fieldLabels = [fieldCount]string{"First name", "Last name", "Email", "Password"}

// accountForm holds the login and sign-up inputs.
type accountForm struct {
	mode   formMode
	inputs []textinput.Model
	focus  int // index into fields()
}

func newAccountForm() accountForm {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = strings.ToLower(fieldLabels[i])
		ti.CharLimit = 120
		inputs[i] = ti
	}
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'
	return accountForm{inputs: inputs}
}

// fields lists the inputs of the active mode in tab order.
func (f accountForm) fields() []int {
	if f.mode == modeSignUp {
		return []int{fieldFirstName, fieldLastName, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (f accountForm) value(field int) string {
	if field == fieldPassword {
		return f.inputs[field].Value()
	}
	return strings.TrimSpace(f.inputs[field].Value())
}

func (f *accountForm) focusCmd() tea.Cmd {
	fields := f.fields()
	if f.focus >= len(fields) {
		f.focus = 0
	}
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[fields[f.focus]].Focus()
}

func (f *accountForm) move(delta int) tea.Cmd {
	n := len(f.fields())
	f.focus = (f.focus + delta + n) % n
	return f.focusCmd()
}

func (f *accountForm) switchMode() tea.Cmd {
	if f.mode == modeLogin {
		f.mode = modeSignUp
	} else {
		f.mode = modeLogin
	}
	f.focus = 0
	return f.focusCmd()
}

func (f *accountForm) setWidth(w int) {
	if w < 1 {
		w = 1
	}
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

// update forwards msg to the focused input.
func (f *accountForm) update(msg tea.Msg) tea.Cmd {
	field := f.fields()[f.focus]
	var cmd tea.Cmd
	f.inputs[field], cmd = f.inputs[field].Update(msg)
	return cmd
}

// observe adjusts the form after an auth state change.
func (f *accountForm) observe(s state.AuthState) {
	if s.Status != state.AuthSuccess {
		return
	}
	switch s.Message {
	case state.MessageAccountCreated:
		// Continue to login with the new email filled in.
		if f.mode == modeSignUp {
			f.mode = modeLogin
			f.focus = 1
			f.inputs[fieldPassword].SetValue("")
			f.focusCmd()
		}
	case state.MessageLoggedIn:
		for i := range f.inputs {
			f.inputs[i].SetValue("")
			f.inputs[i].Blur()
		}
		f.mode = modeLogin
		f.focus = 0
	}
}

// handleAccountKey processes keyboard input for the account view.
func (m Model) handleAccountKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.authState.SignedIn() {
		if key.Matches(msg, m.keys.Logout) {
			return m, m.do(func() { m.auth.Logout(m.ctx) })
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		for i := range m.account.inputs {
			m.account.inputs[i].Blur()
		}
		return m.back()

	case key.Matches(msg, m.keys.SwitchForm):
		return m, tea.Batch(m.account.switchMode(), m.do(m.auth.Reset))

	case key.Matches(msg, m.keys.NextField):
		return m, m.account.move(1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.account.move(-1)

	case key.Matches(msg, m.keys.Submit):
		if m.authState.Status == state.AuthLoading {
			return m, nil
		}
		f := m.account
		if f.mode == modeSignUp {
			in := shop.SignUpInput{
				FirstName: f.value(fieldFirstName),
				LastName:  f.value(fieldLastName),
				Email:     f.value(fieldEmail),
				Password:  f.value(fieldPassword),
			}
			return m, m.do(func() { m.auth.SignUp(m.ctx, in) })
		}
		email, password := f.value(fieldEmail), f.value(fieldPassword)
		return m, m.do(func() { m.auth.Login(m.ctx, email, password) })
	}

	return m, m.account.update(msg)
}

// renderAccount renders the customer profile or the login/sign-up form.
func (m Model) renderAccount() string {
	width, height := m.boxSize()
	styles, bg := m.panelStyles()

	var lines []string
	title := "Account"

	if c := m.authState.Customer; c != nil {
		lines = append(lines,
			bg.Render("Signed in as", styles.MutedText)+bg.Space()+bg.Render(c.DisplayName(), styles.Text.Bold(true)),
			bg.Render("Email", styles.MutedText)+bg.Space()+bg.Render(c.Email, styles.Text),
			"",
			bg.Render("Press L to log out", styles.FaintText),
		)
	} else {
		title = "Log in"
		if m.account.mode == modeSignUp {
			title = "Sign up"
		}
		for _, field := range m.account.fields() {
			label := padRight(fieldLabels[field], formLabelWidth)
			lines = append(lines, bg.Render(label, styles.MutedText)+m.account.inputs[field].View())
		}
		lines = append(lines, "")
		hint := "enter submit · tab next field · ctrl+s sign up instead"
		if m.account.mode == modeSignUp {
			hint = "enter submit · tab next field · ctrl+s log in instead"
		}
		lines = append(lines, bg.Render(hint, styles.FaintText))
	}

	if status := m.renderAuthStatus(styles, bg); status != "" {
		lines = append(lines, "", status)
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, true)
}

func (m Model) renderAuthStatus(styles Styles, bg BgStyle) string {
	s := m.authState
	switch s.Status {
	case state.AuthLoading:
		return bg.Render(m.spinner.View()+" Working...", styles.WarningText)
	case state.AuthSuccess:
		return bg.Render(s.Message, styles.SuccessText)
	case state.AuthError:
		return bg.Render(s.Message, styles.DangerText)
	}
	return ""
}
