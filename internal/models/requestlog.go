package models

// StatusCategory partitions HTTP status codes.
type StatusCategory string

const (
	StatusSuccess     StatusCategory = "success"
	StatusRedirect    StatusCategory = "redirect"
	StatusClientError StatusCategory = "client_error"
	StatusServerError StatusCategory = "server_error"
	StatusOther       StatusCategory = "other"
)

// ClassifyStatus is total: anything outside 200-599 is StatusOther.
func ClassifyStatus(code int) StatusCategory {
	switch {
	case code >= 200 && code <= 299:
		return StatusSuccess
	case code >= 300 && code <= 399:
		return StatusRedirect
	case code >= 400 && code <= 499:
		return StatusClientError
	case code >= 500 && code <= 599:
		return StatusServerError
	default:
		return StatusOther
	}
}

func (c StatusCategory) Emoji() string {
	switch c {
	case StatusSuccess:
		return "✅"
	case StatusRedirect:
		return "↩️"
	case StatusClientError:
		return "❌"
	case StatusServerError:
		return "💥"
	default:
		return "❓"
	}
}

// Bounds returns the inclusive status code range of the category. StatusOther
// has no single range and reports ok=false.
func (c StatusCategory) Bounds() (lo, hi int, ok bool) {
	switch c {
	case StatusSuccess:
		return 200, 299, true
	case StatusRedirect:
		return 300, 399, true
	case StatusClientError:
		return 400, 499, true
	case StatusServerError:
		return 500, 599, true
	default:
		return 0, 0, false
	}
}

// Represents one completed request/response exchange
type RequestLog struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	Timestamp      int64          `gorm:"index" json:"timestamp"`
	ClientIP       string         `json:"client_ip"`
	Method         string         `json:"method"`
	URI            string         `gorm:"index" json:"uri"`
	UserAgent      string         `json:"user_agent,omitempty"`
	StatusCode     int            `gorm:"index" json:"status_code"`
	ResponseTimeMs int64          `json:"response_time_ms"`
	RequestSize    int64          `json:"request_size"`
	ResponseSize   int64          `json:"response_size"`
	StatusCategory StatusCategory `gorm:"index;size:16" json:"status_category"`
}

func (RequestLog) TableName() string {
	return "request_logs"
}

// RequestLogInput is the raw observation a RequestLog is built from.
type RequestLogInput struct {
	Timestamp      int64
	ClientIP       string
	Method         string
	URI            string
	UserAgent      string
	StatusCode     int
	ResponseTimeMs int64
	RequestSize    int64
	ResponseSize   int64
}

// NewRequestLog is the only constructor; it derives StatusCategory from
// StatusCode and clamps negative measurements to zero.
func NewRequestLog(in RequestLogInput) RequestLog {
	clientIP := in.ClientIP
	if clientIP == "" {
		clientIP = UnknownClientIP
	}

	return RequestLog{
		Timestamp:      in.Timestamp,
		ClientIP:       clientIP,
		Method:         in.Method,
		URI:            in.URI,
		UserAgent:      in.UserAgent,
		StatusCode:     in.StatusCode,
		ResponseTimeMs: max(in.ResponseTimeMs, 0),
		RequestSize:    max(in.RequestSize, 0),
		ResponseSize:   max(in.ResponseSize, 0),
		StatusCategory: ClassifyStatus(in.StatusCode),
	}
}

const (
	UnknownClientIP  = "unknown"
	UnknownUserAgent = "Unknown"
)

// DisplayUserAgent returns the user agent, or "Unknown" when the header was absent.
func (r RequestLog) DisplayUserAgent() string {
	if r.UserAgent == "" {
		return UnknownUserAgent
	}
	return r.UserAgent
}
