package trace

import (
	"io/ioutil"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// ExecutionLogHeader is the first line of every execution log.
const ExecutionLogHeader = "Execution Log:"

// LogRecorder writes one line per event to a logger at info level.
type LogRecorder struct {
	logger *logrus.Entry
}

// NewLogRecorder ...
func NewLogRecorder(logger *logrus.Entry) *LogRecorder {
	return &LogRecorder{
		logger: logger,
	}
}

// Record implements Recorder.
func (l *LogRecorder) Record(e Event) error {
	l.logger.Info(e.String())
	return nil
}

// lineFormatter prints the bare message, one per line.
type lineFormatter struct{}

func (lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(entry.Message + "\n"), nil
}

// NewExecutionLog truncates the file at path, writes the header, and returns a
// logger whose info entries are appended to the file.
func NewExecutionLog(path string) (*logrus.Logger, error) {
	if err := ioutil.WriteFile(path, []byte(ExecutionLogHeader+"\n"), 0644); err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.Out = ioutil.Discard
	logger.Level = logrus.InfoLevel

	logger.Hooks.Add(lfshook.NewHook(
		lfshook.PathMap{logrus.InfoLevel: path},
		lineFormatter{},
	))

	return logger, nil
}
