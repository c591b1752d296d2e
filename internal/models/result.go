package models

// ErrorKind классифицирует причину неудачной попытки сокращения.
type ErrorKind int

const (
	KindNone          ErrorKind = iota
	KindConfiguration           // адрес сервиса не задан
	KindValidation              // пустой или некорректный ввод
	KindService                 // сервис ответил не-2xx
	KindTransport               // запрос не выполнен или ответ не разобран
)

// String возвращает имя вида ошибки для логов, метрик и JSON.
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindService:
		return "service"
	case KindTransport:
		return "transport"
	default:
		return "none"
	}
}

// ShortenResult результат одного обращения к сервису сокращения.
// Заполнен ровно один вариант: ShortURL либо ErrorDetail.
type ShortenResult struct {
	ShortURL    string
	ErrorDetail string
	Kind        ErrorKind
}

// ShortenSuccess создает успешный результат.
func ShortenSuccess(shortURL string) ShortenResult {
	return ShortenResult{ShortURL: shortURL}
}

// ShortenFailure создает неуспешный результат.
func ShortenFailure(kind ErrorKind, detail string) ShortenResult {
	return ShortenResult{ErrorDetail: detail, Kind: kind}
}

// Succeeded сообщает, содержит ли результат короткую ссылку.
func (r ShortenResult) Succeeded() bool {
	return r.Kind == KindNone && r.ShortURL != ""
}
