package kafka

var NewProducerWithWriter = newProducerWithWriter
