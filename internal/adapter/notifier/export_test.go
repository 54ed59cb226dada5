package notifier

// NewKafkaNotifierWithWriter swaps the broker connection for a test double.
func NewKafkaNotifierWithWriter(w messageWriter, topic string) *KafkaNotifier {
	return &KafkaNotifier{writer: w, topic: topic}
}
