package iocli

//go:generate moq -out io_mock.go . IO

// IO ввод-вывод CLI
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	// IsTerminal true, если ввод идет с терминала (интерактивный режим)
	IsTerminal() bool
	Write(p []byte) (n int, err error)
}
