package rabbitmq

// NewClientWithChannel builds a Client around a fake channel.
func NewClientWithChannel(ch channel, queue string) *Client {
	return &Client{channel: ch, queue: queue}
}
