// Package main provides localization for the audioexport CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Output":   "出力先",
		"Preset":   "プリセット",
		"Encoding": "エンコード",
		"Source":   "入力",
		"Debug":    "デバッグ",
		"Logging":  "ログ",

		// Root command
		"Export audio to any format ffmpeg can encode": "ffmpegがエンコードできる任意の形式に音声を書き出す",

		// Export command
		"Encode an audio source into a file": "音声ソースをファイルにエンコード",
		"Decode INPUT (mp3 or flac), or read raw PCM from stdin with \"-\", or generate a tone with --tone, and stream it into ffmpeg.": "INPUT（mp3またはflac）をデコードするか、\"-\" で標準入力から生PCMを読み込むか、--tone でトーンを生成し、ffmpegにストリーミングします。",

		// Probe command
		"Show the tracks of an mp4, m4a or mov file": "mp4、m4a、movファイルのトラックを表示",
		"Print as JSON":                              "JSONで出力",
		"Fragmented: %t":                             "フラグメント化: %t",

		// Version command
		"Show version information":  "バージョン情報を表示",
		"audioexport version %s":    "audioexport バージョン %s",

		// Output flags
		"Output file path (required)":                        "出力ファイルパス（必須）",
		"Write ffmpeg diagnostics to <output>.log":           "ffmpegの診断ログを <output>.log に書き込む",
		"Skip checking the written file":                     "書き出したファイルの検査を省略",
		"Output execution summary to file (Markdown, or plain text for .txt)": "実行サマリーをファイルに出力（Markdown形式、.txtならプレーンテキスト）",

		// Preset flags
		"YAML configuration file":            "YAML設定ファイル",
		"Export preset (music, voice)":       "エクスポートプリセット（music, voice）",
		"Quality preset (low, medium, high)": "品質プリセット（low, medium, high）",

		// Encoding flags
		"ffmpeg audio encoder (default: chosen from the output extension)": "ffmpegの音声エンコーダー（デフォルト: 出力の拡張子から選択）",
		"Audio bitrate, e.g. 192k":                 "音声ビットレート（例: 192k）",
		"Sample rate in Hz":                        "サンプルレート（Hz）",
		"Bytes per sample (1-4)":                   "サンプルあたりのバイト数（1-4）",
		"Channel count (default: the source's)":    "チャンネル数（デフォルト: 入力と同じ）",
		"Extra ffmpeg argument, repeatable":        "ffmpegへの追加引数（複数指定可）",
		"Video file to mux the audio against":      "音声と多重化する動画ファイル",
		"Frames per chunk written to ffmpeg":       "ffmpegに書き込むチャンクあたりのフレーム数",
		"Path to the ffmpeg binary":                "ffmpeg実行ファイルのパス",

		// Source flags
		"Generate a sine tone of this frequency in Hz instead of reading INPUT": "INPUTを読む代わりにこの周波数（Hz）の正弦波を生成",
		"Tone duration": "トーンの長さ",

		// Debug flags
		"Enable debug output":        "デバッグ出力を有効化",
		"Directory for debug output": "デバッグ出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Log format (console, json)":           "ログ形式（console, json）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Runtime messages
		"Output saved to %s":            "出力を %s に保存しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Failed to write summary: %s":   "サマリーの書き込みに失敗しました: %s",
		"Error: %v":                     "エラー: %v",

		// Summary content
		"Export Summary": "エクスポートサマリー",
		"Generated":      "生成日時",
		"Session":        "セッション",
		"Results":        "実行結果",
		"Settings":       "設定",
		"Item":           "項目",
		"Value":          "値",

		// Results section
		"Input":          "入力",
		"File Size":      "ファイルサイズ",
		"Audio Duration": "再生時間",
		"Chunks":         "チャンク数",
		"PCM Data":       "PCMデータ量",
		"Container":      "コンテナ",
		"Audio Track":    "音声トラック",
		"Video Track":    "映像トラック",

		// Settings section
		"Quality":         "品質",
		"Codec":           "コーデック",
		"Bitrate":         "ビットレート",
		"Sample Rate":     "サンプルレート",
		"Sample Width":    "量子化ビット数",
		"Channels":        "チャンネル数",
		"None":            "なし",
		"Encoder default": "エンコーダーの既定値",
		"Generated by":    "生成:",
	})
}
