// Package validator проверяет пользовательский ввод до обращения к сервису.
package validator

import "net/url"

// IsValidURL сообщает, является ли строка абсолютным URL со схемой и хостом.
// Никогда не паникует: неразбираемая строка просто дает false.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
