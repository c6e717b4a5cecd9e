package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

// 에러 타입 상수
const (
	// Unknown 알 수 없는 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 로컬 시스템 오류 (설정 파일 읽기/쓰기, 표준 입력 등 I/O)
	System

	// Config 설정 파일 또는 설정 키와 관련된 오류
	Config

	// Transport Prowl API 서버와의 HTTP 통신 실패
	Transport

	// ParsingFailed API 응답(XML) 파싱 실패
	ParsingFailed

	// InvalidInput 잘못된 입력값 (메시지 길이 초과, 우선순위 범위 오류 등)
	InvalidInput

	// Unauthorized 인증 정보 누락 (API 키, Provider 키)
	Unauthorized
)

var errorTypeNames = [...]string{
	Unknown:       "Unknown",
	Internal:      "Internal",
	System:        "System",
	Config:        "Config",
	Transport:     "Transport",
	ParsingFailed: "ParsingFailed",
	InvalidInput:  "InvalidInput",
	Unauthorized:  "Unauthorized",
}

// String ErrorType의 이름을 반환합니다. 정의되지 않은 값은 "ErrorType(N)" 형식으로 반환합니다.
func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
