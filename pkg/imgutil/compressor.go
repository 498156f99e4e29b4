package imgutil

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
)

// FallbackMIMEType は判定できなかった画像に付けるタグです。
const FallbackMIMEType = "image/jpeg"

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に再エンコードします。
// image.Decodeがサポートするフォーマットに対応しています。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DetectImageMIME は先頭バイトから MIME タイプを判定します。
// 画像でない場合は FallbackMIMEType と false を返します。
func DetectImageMIME(data []byte) (string, bool) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return FallbackMIMEType, false
	}
	return mimeType, true
}

// PrepareUpload はアップロードされたバイト列とモデルに渡す MIME タイプを決めます。
// normalize が true の場合は JPEG に揃え、タグと中身を一致させます。
// 再エンコードに失敗したときは元のバイト列のまま判定結果を使います。
func PrepareUpload(data []byte, normalize bool, quality int) ([]byte, string) {
	if normalize {
		if compressed, err := CompressToJPEG(data, quality); err == nil {
			return compressed, "image/jpeg"
		}
	}
	mimeType, _ := DetectImageMIME(data)
	return data, mimeType
}
