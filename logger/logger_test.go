package logger_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"github.com/padraicbc/hoopsrank/logger"
)

func TestNew(t *testing.T) {
	Convey("Debug mode lowers the level to debug", t, func() {
		l, err := logger.New("ratings", true)
		So(err, ShouldBeNil)
		So(l.Core().Enabled(zap.DebugLevel), ShouldBeTrue)
	})

	Convey("Normal mode logs at info and above", t, func() {
		l, err := logger.New("api", false)
		So(err, ShouldBeNil)
		So(l.Core().Enabled(zap.DebugLevel), ShouldBeFalse)
		So(l.Core().Enabled(zap.InfoLevel), ShouldBeTrue)
	})
}
