package response

import "net/url"

// escapeFilename 按 RFC 5987 编码文件名，中文文件名在浏览器中可正常显示
func escapeFilename(name string) string {
	return url.PathEscape(name)
}
