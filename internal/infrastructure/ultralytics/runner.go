package ultralytics

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

//go:embed driver.py
var driverSource string

// Runner запускает встроенный драйвер в отдельном процессе Python.
// Запрос уходит в stdin, ответ читается из stdout; прогресс фреймворка идёт в Stderr.
type Runner struct {
	Python string    // интерпретатор с установленным пакетом ultralytics
	Task   string    // тип задачи модели, например obb
	Dir    string    // рабочий каталог процесса
	Stderr io.Writer // куда выводить прогресс фреймворка

	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewRunner создаёт Runner, который пишет прогресс в os.Stderr
func NewRunner(python, task, dir string) *Runner {
	return &Runner{
		Python:  python,
		Task:    task,
		Dir:     dir,
		Stderr:  os.Stderr,
		command: exec.CommandContext,
	}
}

type request struct {
	Action     string          `json:"action"`
	Checkpoint string          `json:"checkpoint"`
	Task       string          `json:"task,omitempty"`
	Train      *trainRequest   `json:"train,omitempty"`
	Predict    *predictRequest `json:"predict,omitempty"`
}

type trainRequest struct {
	Data    string `json:"data"`
	Epochs  int    `json:"epochs"`
	ImgSize int    `json:"imgsz"`
	Project string `json:"project"`
	Name    string `json:"name"`
	ExistOK bool   `json:"exist_ok"`
}

type predictRequest struct {
	Source string `json:"source"`
	Save   bool   `json:"save"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// call выполняет одно действие драйвера и декодирует result в out.
func (r *Runner) call(ctx context.Context, req request, out any) error {
	req.Task = r.Task

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", req.Action, err)
	}

	cmd := r.command(ctx, r.Python, "-c", driverSource)
	cmd.Dir = r.Dir
	cmd.Stdin = bytes.NewReader(payload)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = r.Stderr

	runErr := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", req.Action, ctxErr)
	}

	var resp response
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &resp); err != nil {
		if runErr != nil {
			return fmt.Errorf("%s: %w", req.Action, runErr)
		}
		return fmt.Errorf("decode %s response: %w", req.Action, err)
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	if runErr != nil {
		return fmt.Errorf("%s: %w", req.Action, runErr)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", req.Action, err)
	}
	return nil
}
