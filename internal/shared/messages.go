package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys double as the English text.
const (
	MsgRequestFailed       = "Could not reach the playlist service."
	MsgPlaylistsFailed     = "Could not load playlists."
	MsgTracksFailed        = "Could not load the playlist's songs."
	MsgTitleRequired       = "A playlist title is required."
	MsgQueryRequired       = "A search term is required."
	MsgTrackNotPersisted   = "This song has not been saved yet and cannot be changed in a playlist."
	MsgCredentialsRequired = "A valid email and password are required."
	MsgNicknameRequired    = "A nickname is required."
	MsgSessionExpired      = "Your session has expired. Please sign in again."
	MsgNotSignedIn         = "You are not signed in."
)

var korean = map[string]string{
	MsgRequestFailed:       "서버에 연결할 수 없습니다.",
	MsgPlaylistsFailed:     "플레이리스트 목록을 불러올 수 없습니다.",
	MsgTracksFailed:        "음악 목록을 불러올 수 없습니다.",
	MsgTitleRequired:       "플레이리스트 이름을 입력하세요.",
	MsgQueryRequired:       "검색어를 입력하세요.",
	MsgTrackNotPersisted:   "저장되지 않은 곡은 플레이리스트에서 변경할 수 없습니다.",
	MsgCredentialsRequired: "올바른 이메일과 비밀번호를 입력하세요.",
	MsgNicknameRequired:    "닉네임을 입력하세요.",
	MsgSessionExpired:      "세션이 만료되었습니다. 다시 로그인하세요.",
	MsgNotSignedIn:         "로그인되어 있지 않습니다.",
}

func init() {
	for key, text := range korean {
		if err := message.SetString(language.Korean, key, text); err != nil {
			panic(err)
		}
	}
}

// Messages renders user-facing strings for one locale.
type Messages struct {
	printer *message.Printer
}

// NewMessages returns a [Messages] for the given BCP 47 locale, defaulting to English.
func NewMessages(locale string) *Messages {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Messages{printer: message.NewPrinter(tag)}
}

// Get returns the localized text for key.
func (m *Messages) Get(key string) string {
	if m == nil {
		return key
	}
	return m.printer.Sprintf(key)
}
