package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "tag").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "unsupported_type":
			return "サポートされていない型です"
		case "out_of_range":
			return "数値が範囲外です"
		case "duplicate_item":
			return "セット要素が重複しています"
		case "duplicate_key":
			return "キーが重複しています"
		case "empty_field":
			return "フィールド名が空です"
		case "too_long":
			return "長すぎます"
		case "reserved_prefix":
			return "予約された接頭辞です"
		case "invalid_format":
			return "形式が不正です"
		case "invalid_char":
			return "不正な文字が含まれています"
		case "invalid_key":
			return "キーが文字列ではありません"
		case "unknown_tag":
			return "未知のワイヤタグです"
		case "malformed_wire":
			return "ワイヤ表現が不正です"
		case "max_depth":
			return "ネストが深すぎます"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "unsupported_type":
			return "unsupported type"
		case "out_of_range":
			return "number out of range"
		case "duplicate_item":
			return "duplicate set item"
		case "duplicate_key":
			return "duplicate key"
		case "empty_field":
			return "empty field name"
		case "too_long":
			return "too long"
		case "reserved_prefix":
			return "reserved prefix"
		case "invalid_format":
			return "invalid format"
		case "invalid_char":
			return "invalid character"
		case "invalid_key":
			return "object keys must be strings"
		case "unknown_tag":
			return "unknown wire tag"
		case "malformed_wire":
			return "malformed wire value"
		case "max_depth":
			return "nesting too deep"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
