package event

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NewGoChannelPubSub 进程内 Pub/Sub;生产部署可换成 broker 实现,
// 上层只依赖 message.Publisher / message.Subscriber
func NewGoChannelPubSub(logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 1024,
	}, logger)
}

// NewRouter 构建带恢复中间件的消息路由
func NewRouter(logger watermill.LoggerAdapter) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}
	router.AddMiddleware(recoverMiddleware)
	return router, nil
}

// recoverMiddleware 消费 handler panic 时转为错误,交给重投递机制
func recoverMiddleware(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) (msgs []*message.Message, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &panicError{value: r}
			}
		}()
		return h(msg)
	}
}

type panicError struct{ value any }

func (e *panicError) Error() string { return "handler panic" }
