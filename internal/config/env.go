package loyalty

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Обязательная переменная окружения
func Required(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("env %s is not set", name)
	}
	return v, nil
}

// Целое значение с умолчанием: пусто, мусор или <= 0 дают def
func Int(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Длительность в секундах
func Seconds(name string, def time.Duration) time.Duration {
	n := Int(name, 0)
	if n == 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

func String(name string, def string) string {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	return v
}
