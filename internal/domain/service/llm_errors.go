package service

import "strings"

// credentialMarkers 凭据失效时各服务端返回的特征文本（小写）
var credentialMarkers = []string{
	"api key not valid",
	"invalid_api_key",
	"incorrect api key",
	"api_key_invalid",
}

// IsCredentialError 判断模型调用错误是否由无效凭据引起
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range credentialMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
