package operations

import (
	"fmt"
	"time"

	"github.com/buildstack/kiln/internal/ui/models/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type OperationFunc func() (interface{}, error)

type DisplayFunc func(result interface{})

// Result wraps an operation's outcome together with its wall-clock time.
type Result struct {
	Data          interface{}
	ExecutionTime time.Duration
}

// WithSpinner runs operation while displaying an animated spinner, then hands
// the result to display.
func WithSpinner(message string, operation OperationFunc, display DisplayFunc) error {
	program := tea.NewProgram(spinner.NewModelWithMessage(message))

	go func() {
		startTime := time.Now()
		result, err := operation()

		if err != nil {
			program.Send(err)
			return
		}

		program.Send(spinner.ResultMsg{
			Result: Result{
				Data:          result,
				ExecutionTime: time.Since(startTime),
			},
		})
	}()

	model, err := program.Run()
	if err != nil {
		return err
	}

	finalModel, ok := model.(spinner.Model)
	if !ok {
		return fmt.Errorf("program finished with invalid model")
	}

	if finalModel.HasError() {
		return finalModel.GetError()
	}

	if display != nil && finalModel.HasResult() {
		display(finalModel.GetResult())
	}

	return nil
}
