//go:build windows

package platform

import (
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// toastScript builds the PowerShell that shows a toast, with an image when
// icon is set.
func toastScript(title, body, icon, app string) string {
	kind := "ToastText02"
	if icon != "" {
		kind = "ToastImageAndText02"
	}
	var sb strings.Builder
	sb.WriteString("[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; ")
	sb.WriteString("$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::" + kind + "); ")
	sb.WriteString("$texts = $template.GetElementsByTagName(\"text\"); ")
	sb.WriteString("$texts.Item(0).AppendChild($template.CreateTextNode(" + psQuote(title) + ")) > $null; ")
	sb.WriteString("$texts.Item(1).AppendChild($template.CreateTextNode(" + psQuote(body) + ")) > $null; ")
	if icon != "" {
		sb.WriteString("$template.GetElementsByTagName(\"image\").Item(0).SetAttribute(\"src\", " + psQuote(icon) + "); ")
	}
	sb.WriteString("$toast = [Windows.UI.Notifications.ToastNotification]::new($template); ")
	sb.WriteString("[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(" + psQuote(app) + ").Show($toast);")
	return sb.String()
}

// Notify displays a toast notification using the Windows notification center.
func Notify(title, body string, opts Options) error {
	script := toastScript(title, body, strings.TrimSpace(opts.IconPath), opts.appName())
	return exec.Command("powershell.exe", "-NoProfile", "-Command", script).Run()
}
