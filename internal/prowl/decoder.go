package prowl

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Prowl API의 응답은 루트 요소(<prowl>) 아래 단 하나의 자식 요소를 가집니다.
//
//	<prowl><success code="200" remaining="999" resetdate="1700000000"/></prowl>
//	<prowl><error code="401">Invalid API key</error></prowl>
//	<prowl><retrieve token="..." url="..."/></prowl>
//	<prowl><retrieve apikey="..."/></prowl>
//
// 발송/확인 응답(addResponse)은 success, error 만 허용하고,
// 토큰/API 키 발급 응답(tokenResponse)은 retrieve 까지 허용합니다.

// rawElement 루트의 자식 요소를 이름과 속성, 텍스트 그대로 보관합니다.
type rawElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
}

func (e *rawElement) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

type document struct {
	XMLName  xml.Name
	Children []rawElement `xml:",any"`
}

// addResponse 발송/확인 응답의 요소입니다. (successElement | errorElement)
type addResponse interface {
	isAddResponse()
}

// tokenResponse 토큰/API 키 발급 응답의 요소입니다. (successElement | errorElement | retrieveElement)
type tokenResponse interface {
	isTokenResponse()
}

type successElement struct {
	code      int
	remaining *int
	resetDate string
}

func (successElement) isAddResponse()   {}
func (successElement) isTokenResponse() {}

type errorElement struct {
	code    int
	message string
}

func (errorElement) isAddResponse()   {}
func (errorElement) isTokenResponse() {}

type retrieveElement struct {
	token  *string
	url    *string
	apiKey *string
}

func (retrieveElement) isTokenResponse() {}

// ParseResponse 발송(/add) 또는 확인(/verify) 응답을 해석합니다.
//
// <success>는 Result로, <error>는 *APIError로 반환하며, 그 외의 형태는 파싱 에러입니다.
func ParseResponse(body []byte) (*Result, error) {
	elem, err := decodeSingleChild(body)
	if err != nil {
		return nil, err
	}

	var resp addResponse
	switch elem.XMLName.Local {
	case "success":
		resp, err = newSuccessElement(elem)
	case "error":
		resp, err = newErrorElement(elem)
	default:
		return nil, newParseError("unexpected element <%s>", elem.XMLName.Local)
	}
	if err != nil {
		return nil, err
	}

	switch v := resp.(type) {
	case successElement:
		return &Result{Code: v.code, Remaining: v.remaining, ResetDate: v.resetDate}, nil
	case errorElement:
		return nil, NewAPIError(v.code, v.message)
	default:
		return nil, newParseError("unexpected response")
	}
}

// ParseTokenResponse 토큰(/retrieve/token) 또는 API 키(/retrieve/apikey) 발급 응답을 해석합니다.
//
// <retrieve>에 token과 url이 모두 있으면 토큰 결과를, 그렇지 않고 apikey가 있으면 API 키 결과를 반환합니다.
// 둘 다 아니면 500 API 에러입니다. 409 에러는 ErrTokenNotApproved로 변환합니다.
func ParseTokenResponse(body []byte) (*Result, error) {
	elem, err := decodeSingleChild(body)
	if err != nil {
		return nil, err
	}

	var resp tokenResponse
	switch elem.XMLName.Local {
	case "success":
		resp, err = newSuccessElement(elem)
	case "error":
		resp, err = newErrorElement(elem)
	case "retrieve":
		resp = newRetrieveElement(elem)
	default:
		return nil, newParseError("unexpected element <%s>", elem.XMLName.Local)
	}
	if err != nil {
		return nil, err
	}

	switch v := resp.(type) {
	case successElement:
		return &Result{Code: v.code, Remaining: v.remaining, ResetDate: v.resetDate}, nil

	case errorElement:
		if v.code == 409 {
			return nil, ErrTokenNotApproved
		}
		return nil, NewAPIError(v.code, v.message)

	case retrieveElement:
		if v.token != nil && v.url != nil {
			return &Result{Code: 200, Token: *v.token, TokenURL: *v.url}, nil
		}
		if v.apiKey != nil {
			return &Result{Code: 200, APIKey: *v.apiKey}, nil
		}
		return nil, NewAPIError(500, "Invalid retrieve response")

	default:
		return nil, newParseError("unexpected response")
	}
}

func decodeSingleChild(body []byte) (*rawElement, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, wrapParseError(err)
	}

	switch len(doc.Children) {
	case 0:
		return nil, newParseError("<%s> has no response element", doc.XMLName.Local)
	case 1:
		return &doc.Children[0], nil
	default:
		return nil, newParseError("<%s> has %d response elements, expected exactly one", doc.XMLName.Local, len(doc.Children))
	}
}

func newSuccessElement(elem *rawElement) (successElement, error) {
	code, err := requiredIntAttr(elem, "code")
	if err != nil {
		return successElement{}, err
	}

	s := successElement{code: code}
	if v, ok := elem.attr("remaining"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return successElement{}, newParseError("invalid remaining attribute %q", v)
		}
		s.remaining = &n
	}
	if v, ok := elem.attr("resetdate"); ok {
		s.resetDate = v
	}

	return s, nil
}

func newErrorElement(elem *rawElement) (errorElement, error) {
	code, err := requiredIntAttr(elem, "code")
	if err != nil {
		return errorElement{}, err
	}
	return errorElement{code: code, message: strings.TrimSpace(elem.Text)}, nil
}

func newRetrieveElement(elem *rawElement) retrieveElement {
	var r retrieveElement
	if v, ok := elem.attr("token"); ok {
		r.token = &v
	}
	if v, ok := elem.attr("url"); ok {
		r.url = &v
	}
	if v, ok := elem.attr("apikey"); ok {
		r.apiKey = &v
	}
	return r
}

func requiredIntAttr(elem *rawElement, name string) (int, error) {
	v, ok := elem.attr(name)
	if !ok {
		return 0, newParseError("<%s> is missing the %s attribute", elem.XMLName.Local, name)
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, newParseError("invalid %s attribute %q", name, v)
	}
	return n, nil
}
