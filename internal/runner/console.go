package runner

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"
)

// installConsole gives a realm a console object that forwards to logger.
func installConsole(vm *goja.Runtime, logger *log.Logger) error {
	console := vm.NewObject()
	levels := map[string]func(msg any, keyvals ...any){
		"log":   logger.Info,
		"info":  logger.Info,
		"debug": logger.Debug,
		"warn":  logger.Warn,
		"error": logger.Error,
	}
	for name, emit := range levels {
		emit := emit
		if err := console.Set(name, func(call goja.FunctionCall) goja.Value {
			parts := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				parts[i] = arg.String()
			}
			emit(strings.Join(parts, " "), "source", "console")
			return goja.Undefined()
		}); err != nil {
			return err
		}
	}
	return vm.Set("console", console)
}
