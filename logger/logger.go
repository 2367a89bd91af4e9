package logger

import (
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDir      = "log"
	logFilename = "escrow.log"
)

var Logger zerolog.Logger
var HttpLogger zerolog.Logger
var logFilePath string
var Writer io.Writer

func Init(logLevel string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.DateTime,
	}
	Writer = consoleWriter

	Logger = zerolog.New(consoleWriter).
		With().
		Timestamp().
		Logger()

	// HttpLogger discards until a file logger is attached
	HttpLogger = zerolog.New(io.Discard).
		With().
		Timestamp().
		Logger()

	level, err := strconv.Atoi(logLevel)
	if err != nil {
		level = 4
	}

	// LOG_LEVEL uses the conventional 0 (panic) .. 6 (trace) scale
	var zLevel zerolog.Level
	switch level {
	case 6:
		zLevel = zerolog.TraceLevel
	case 5:
		zLevel = zerolog.DebugLevel
	case 4:
		zLevel = zerolog.InfoLevel
	case 3:
		zLevel = zerolog.WarnLevel
	case 2:
		zLevel = zerolog.ErrorLevel
	case 1:
		zLevel = zerolog.FatalLevel
	case 0:
		zLevel = zerolog.PanicLevel
	default:
		zLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(zLevel)
	Logger = Logger.Level(zLevel)
	HttpLogger = HttpLogger.Level(zLevel)

	if zLevel <= zerolog.DebugLevel {
		buildInfo, _ := debug.ReadBuildInfo()
		Logger = Logger.With().
			Caller().
			Interface("build_info", buildInfo).
			Logger()
	}
}

func AddFileLogger(workdir string) error {
	logFilePath = filepath.Join(workdir, logDir, logFilename)
	fileLogger := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxAge:     3,
		MaxBackups: 3,
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.DateTime,
	}
	multi := zerolog.MultiLevelWriter(consoleWriter, fileLogger)
	Writer = multi

	Logger = zerolog.New(multi).
		With().
		Timestamp().
		Logger()

	HttpLogger = zerolog.New(fileLogger).
		With().
		Timestamp().
		Logger()

	return nil
}

func GetLogFilePath() string {
	return logFilePath
}
