package screen

import (
	"go.uber.org/multierr"

	"github.com/dep2p/go-unpeek/internal/core/channel"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// Signal 无负载的命令
type Signal struct{}

// Commands 界面的一次性命令
//
// 每个命令一个 RejectNull Channel，视图处理后清空。
type Commands struct {
	dialog     *channel.Channel[string]
	hideDialog *channel.Channel[Signal]
	finish     *channel.Channel[*types.FinishEvent]
	back       *channel.Channel[Signal]
}

func newCommands(prefix string, reporter interfaces.Reporter) *Commands {
	opts := func(name string) []channel.Option {
		return []channel.Option{
			channel.WithName(prefix + "." + name),
			channel.WithReporter(reporter),
		}
	}
	return &Commands{
		dialog:     channel.New[string](opts("dialog")...),
		hideDialog: channel.New[Signal](opts("hide_dialog")...),
		finish:     channel.New[*types.FinishEvent](opts("finish")...),
		back:       channel.New[Signal](opts("back")...),
	}
}

// ShowDialog 下发弹窗命令
func (c *Commands) ShowDialog(message string) error {
	return c.dialog.Write(message)
}

// HideDialog 下发关闭弹窗命令
func (c *Commands) HideDialog() error {
	return c.hideDialog.Write(Signal{})
}

// Finish 下发结束界面命令
func (c *Commands) Finish(result any) error {
	return c.finish.Write(&types.FinishEvent{Result: result})
}

// Back 下发返回命令
func (c *Commands) Back() error {
	return c.back.Write(Signal{})
}

// Dialog 返回弹窗命令通道
func (c *Commands) Dialog() *channel.Channel[string] {
	return c.dialog
}

// DialogHidden 返回关闭弹窗命令通道
func (c *Commands) DialogHidden() *channel.Channel[Signal] {
	return c.hideDialog
}

// Finishing 返回结束界面命令通道
func (c *Commands) Finishing() *channel.Channel[*types.FinishEvent] {
	return c.finish
}

// BackPressed 返回返回命令通道
func (c *Commands) BackPressed() *channel.Channel[Signal] {
	return c.back
}

// close 关闭全部命令通道
func (c *Commands) close() error {
	return multierr.Combine(
		c.dialog.Close(),
		c.hideDialog.Close(),
		c.finish.Close(),
		c.back.Close(),
	)
}
