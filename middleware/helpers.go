package middleware

import (
	"encoding/json"
	"net"
	"net/http"
)

// clientIP возвращает хост из RemoteAddr. RealIP из chi выполняется раньше и уже
// подставил X-Forwarded-For / X-Real-IP, если они есть.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || ip == "" {
		return r.RemoteAddr
	}
	return ip
}

// writeError повторяет формат ошибок handlers, чтобы отказы middleware
// выглядели для UI так же.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
