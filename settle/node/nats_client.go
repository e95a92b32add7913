package node

import (
	"errors"

	"github.com/nats-io/nats.go"

	"riichi/common/log"
)

var (
	ErrNotConnected = errors.New("未连接到远程服务")
)

// NatsClient 不能及时发现 nats 服务关闭
type NatsClient struct {
	conn *nats.Conn
	subs []*nats.Subscription
}

func NewNatsClient() *NatsClient {
	return &NatsClient{}
}

func (nc *NatsClient) IsConnected() bool {
	return nc.conn != nil && nc.conn.IsConnected()
}

func (nc *NatsClient) Run(url string) error {
	log.Info("nats 服务正在启动, url:%s", url)
	var err error
	nc.conn, err = nats.Connect(url)
	if err != nil {
		log.Error("nats 连接错误,err:%v", err)
		return err
	}
	log.Info("nats 服务启动成功, url:%s", url)
	return nil
}

// QueueSubscribe 同组竞争消费，节点横向扩容时请求只派给一个
func (nc *NatsClient) QueueSubscribe(subject, queue string, handler nats.MsgHandler) error {
	if !nc.IsConnected() {
		return ErrNotConnected
	}
	sub, err := nc.conn.QueueSubscribe(subject, queue, handler)
	if err != nil {
		log.Error("nats sub err:%v", err)
		return err
	}
	nc.subs = append(nc.subs, sub)
	return nil
}

func (nc *NatsClient) SendMessage(subject string, data []byte) error {
	if !nc.IsConnected() {
		return ErrNotConnected
	}
	return nc.conn.Publish(subject, data)
}

func (nc *NatsClient) Close() error {
	if nc.conn == nil {
		return nil
	}
	for _, sub := range nc.subs {
		_ = sub.Unsubscribe()
	}
	nc.conn.Close()
	log.Info("NATS 连接已关闭")
	return nil
}
