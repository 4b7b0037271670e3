package test

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/polkiloo/clvpredictor/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomWord returns a pseudo-random alphabetic string within the provided bounds.
// Such strings never parse as numbers.
func RandomWord(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += randomIntn(maxLen - minLen + 1)
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

// RandomMetricsInput returns plausible numeric text for every field.
func RandomMetricsInput() model.CustomerMetricsInput {
	return model.CustomerMetricsInput{
		TotalOrders:          strconv.Itoa(randomIntn(500)),
		TotalProducts:        strconv.Itoa(randomIntn(5000)),
		ReorderRate:          strconv.FormatFloat(randomFloat(), 'f', 2, 64),
		AvgDaysBetweenOrders: strconv.FormatFloat(0.1+randomFloat()*60, 'f', 1, 64),
		RecencyDays:          strconv.FormatFloat(randomFloat()*365, 'f', 0, 64),
		OrdersLast5:          strconv.Itoa(randomIntn(6)),
	}
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

func randomFloat() float64 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Float64()
}
