package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// テスト用のダミー画像（10x10の赤い正方形）を作成するヘルパー
func createDummyImageData(t *testing.T, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}

	buf := new(bytes.Buffer)
	var err error
	switch format {
	case "png":
		err = png.Encode(buf, img)
	case "jpeg":
		err = jpeg.Encode(buf, img, nil)
	default:
		t.Fatalf("unsupported format: %s", format)
	}

	if err != nil {
		t.Fatalf("failed to encode dummy image: %v", err)
	}
	return buf.Bytes()
}

func TestCompressToJPEG(t *testing.T) {
	t.Run("正常なPNG画像をJPEGに圧縮できること", func(t *testing.T) {
		pngData := createDummyImageData(t, "png")

		got, err := CompressToJPEG(pngData, 75)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(got) == 0 {
			t.Error("expected output data, but got empty")
		}

		// 出力がJPEGとしてデコード可能か確認
		_, format, err := image.Decode(bytes.NewReader(got))
		if err != nil {
			t.Errorf("failed to decode output image: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("expected format jpeg, got %s", format)
		}
	})

	t.Run("不正なデータを与えた場合にエラーを返すこと", func(t *testing.T) {
		invalidData := []byte("this is not an image")
		_, err := CompressToJPEG(invalidData, 75)
		if err == nil {
			t.Error("expected error for invalid data, but got nil")
		}
	})

	t.Run("Quality設定によってサイズが変化すること", func(t *testing.T) {
		input := createDummyImageData(t, "png")

		highQuality, _ := CompressToJPEG(input, 100)
		lowQuality, _ := CompressToJPEG(input, 10)

		if len(lowQuality) >= len(highQuality) {
			t.Errorf("low quality size (%d) should be smaller than high quality size (%d)", len(lowQuality), len(highQuality))
		}
	})
}

func TestDetectImageMIME(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		want   string
		wantOK bool
	}{
		{"PNG", createDummyImageData(t, "png"), "image/png", true},
		{"JPEG", createDummyImageData(t, "jpeg"), "image/jpeg", true},
		{"GIF", []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"), "image/gif", true},
		{"テキストはフォールバック", []byte("plain text, not an image"), FallbackMIMEType, false},
		{"空データもフォールバック", nil, FallbackMIMEType, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectImageMIME(tt.data)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DetectImageMIME() = (%s, %v), want (%s, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPrepareUpload(t *testing.T) {
	pngData := createDummyImageData(t, "png")

	t.Run("正規化なしではPNGのままタグも実際の形式になること", func(t *testing.T) {
		data, mimeType := PrepareUpload(pngData, false, 75)
		if !bytes.Equal(data, pngData) {
			t.Error("data should be untouched")
		}
		if mimeType != "image/png" {
			t.Errorf("expected image/png, got %s", mimeType)
		}
	})

	t.Run("正規化ありではJPEGに変換されること", func(t *testing.T) {
		data, mimeType := PrepareUpload(pngData, true, 75)
		if mimeType != "image/jpeg" {
			t.Errorf("expected image/jpeg, got %s", mimeType)
		}
		if _, format, err := image.Decode(bytes.NewReader(data)); err != nil || format != "jpeg" {
			t.Errorf("expected decodable jpeg, got format=%s err=%v", format, err)
		}
	})

	t.Run("デコードできないデータは正規化をあきらめて元のまま返すこと", func(t *testing.T) {
		raw := []byte("not an image at all")
		data, mimeType := PrepareUpload(raw, true, 75)
		if !bytes.Equal(data, raw) {
			t.Error("data should be untouched when re-encoding fails")
		}
		if mimeType != FallbackMIMEType {
			t.Errorf("expected fallback %s, got %s", FallbackMIMEType, mimeType)
		}
	})
}
