package prompt

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/rummy/internal/ui/common"
)

// lineModel 单行输入框，回车提交，Esc/Ctrl+C 取消
type lineModel struct {
	prompt    string
	input     textinput.Model
	value     string
	submitted bool
	cancelled bool
}

func newLineModel(prompt string) lineModel {
	ti := textinput.New()
	ti.Placeholder = "type your answer and press Enter"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()
	return lineModel{prompt: prompt, input: ti}
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = m.input.Value()
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineModel) View() string {
	prompt := common.PromptStyle.Render(m.prompt)
	switch {
	case m.submitted:
		return prompt + " " + m.value + "\n"
	case m.cancelled:
		return prompt + "\n"
	default:
		return prompt + "\n" + m.input.View() + "\n"
	}
}

// Tea reads each answer through a one-line bubbletea program.
type Tea struct {
	in  io.Reader
	out io.Writer
}

// NewTea creates a Tea reader on the given terminal streams.
func NewTea(in io.Reader, out io.Writer) *Tea {
	return &Tea{in: in, out: out}
}

// ReadLine runs the input program until the player submits or cancels.
func (t *Tea) ReadLine(ctx context.Context, prompt string) (string, error) {
	p := tea.NewProgram(newLineModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}

	m, ok := final.(lineModel)
	if !ok {
		return "", errors.New("prompt: unexpected model type")
	}
	if m.cancelled {
		return "", io.EOF
	}
	return m.value, nil
}
