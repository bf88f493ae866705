package kafka

// Topics для синхронизации кассы с бэк-офисом.
const (
	// TopicOrderEvents — основной поток событий жизненного цикла заказов.
	TopicOrderEvents = "pos.order.events"
	// TopicDeadLetterQueue — события, которые не удалось доставить.
	TopicDeadLetterQueue = "pos.order.dlq"
)
