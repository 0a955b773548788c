package publisher

import (
	"context"

	"github.com/boardcast/boardcast/model"
	Logger "github.com/boardcast/boardcast/utils/log"
)

// StdErrPublisher logs what would have been published instead of calling
// any platform. It is used when no platform is enabled, so an operator can
// preview the output of a run.
type StdErrPublisher struct{}

func NewStdErrPublisher() *StdErrPublisher {
	return &StdErrPublisher{}
}

func (s *StdErrPublisher) Name() string {
	return "dryrun"
}

func (s *StdErrPublisher) Publish(ctx context.Context, msg model.Message) error {
	Logger.Log.Infof("=== dry-run publish ===\n%s\n%s", msg.Text, msg.SourceUrl)
	return nil
}
