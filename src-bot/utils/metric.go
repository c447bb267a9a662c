package utils

type Metric struct {
	DatabaseRead       chan float64
	DatabaseWrite      chan float64
	DiscordSendMessage chan float64
	CommandInvocation  chan string
	CommandError       chan string
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:       make(chan float64),
		DatabaseWrite:      make(chan float64),
		DiscordSendMessage: make(chan float64),
		CommandInvocation:  make(chan string),
		CommandError:       make(chan string),
	}
}
