package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Session level messages (info)
		"Writing audio in %s": "%s に音声を書き込み中",
		"Done.":               "完了しました。",
		"Session %s":          "セッション %s",

		// Export stage
		"Export progress: chunk %d/%d":       "エクスポート進捗: チャンク %d/%d",
		"Wrote %d chunks (%d bytes)":         "%d チャンク (%d バイト) を書き込みました",
		"Diagnostics are written to %s":      "診断ログを %s に書き込みます",
		"Output has %s audio and %s video":   "出力の音声は %s、映像は %s です",
		"Output is %d bytes":                 "出力サイズは %d バイトです",

		// ffmpeg component
		"Starting %s %s":            "%s %s を起動中",
		"ffmpeg started (pid %d)":   "ffmpeg を起動しました (pid %d)",
		"ffmpeg exited with status %d, hint %s": "ffmpeg がステータス %d で終了しました (ヒント %s)",

		// Warnings
		"ffmpeg exited with status %d while finalizing %s: %s %s": "ffmpeg が %[2]s の書き出し中にステータス %[1]d で終了しました: %[3]s %[4]s",
		"Could not save debug output: %v":   "デバッグ出力を保存できませんでした: %v",
		"Could not probe output: %v":        "出力を解析できませんでした: %v",
		"Closing writer for %s: %v":         "%s のライターを閉じる際にエラー: %v",

		// Errors
		"Failed to export audio: %v": "音声のエクスポートに失敗しました: %v",
	})
}
