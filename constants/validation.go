package constants

// 검증 관련 상수
const (
	MaxLocationLength = 80 // 컨트롤 위치 이름 최대 길이

	// 제어 문자 관련
	ControlCharTab = 9
	ControlCharLF  = 10
	ControlCharCR  = 13
	ControlCharMin = 32
)

// 위치 이름에 허용되지 않는 패턴
var SecurityMaliciousPatterns = []string{
	"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
	"eval(", "alert(", "document.cookie", "$where", "$ne", "$gt",
}
