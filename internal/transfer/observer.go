package transfer

import "github.com/rs/zerolog"

// Observer receives progress notifications from the transfer stages, keeping
// logging out of the orchestration logic itself.
type Observer interface {
	StageStarted(localPath, locator string)
	StageFinished(locator string, size int)
	Dispatched(commandID, instanceID string)
	Polled(attempt int, status string)
}

// NopObserver discards all notifications.
type NopObserver struct{}

func (NopObserver) StageStarted(string, string) {}
func (NopObserver) StageFinished(string, int)   {}
func (NopObserver) Dispatched(string, string)   {}
func (NopObserver) Polled(int, string)          {}

// LogObserver writes notifications to a zerolog logger.
type LogObserver struct {
	Logger zerolog.Logger
}

func (o LogObserver) StageStarted(localPath, locator string) {
	o.Logger.Info().Str("local", localPath).Str("locator", locator).Msg("Uploading file to staging bucket")
}

func (o LogObserver) StageFinished(locator string, size int) {
	o.Logger.Info().Str("locator", locator).Int("bytes", size).Msg("Upload complete")
}

func (o LogObserver) Dispatched(commandID, instanceID string) {
	o.Logger.Info().Str("command_id", commandID).Str("instance", instanceID).Msg("Pull command sent")
}

func (o LogObserver) Polled(attempt int, status string) {
	o.Logger.Debug().Int("attempt", attempt).Str("status", status).Msg("Command status")
}
