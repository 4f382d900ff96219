package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"levelbot/model"
	"levelbot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HandleBotStats reports bot and host diagnostics.
func HandleBotStats(s *discordgo.Session, i *discordgo.InteractionCreate, b model.Bot) {
	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)
	cpuUsage := 0.0
	if len(cpuPercent) > 0 {
		cpuUsage = cpuPercent[0]
	}

	platform := "unknown"
	if hostInfo, err := host.Info(); err == nil {
		platform = fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion)
	}

	memory := "unknown"
	if vm, err := mem.VirtualMemory(); err == nil {
		memory = fmt.Sprintf("%.1f%% (%d MB / %d MB)", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024)
	}

	var dbSize int64
	if fi, err := os.Stat(b.GetConfig().DatabasePath); err == nil {
		dbSize = fi.Size() / 1024
	}

	users, err := b.GetEngine().UserCount(context.Background())
	if err != nil {
		log.Printf("Error counting tracked users: %v", err)
	}

	embed := &discordgo.MessageEmbed{
		Title: "Bot Stats",
		Color: 0x5865F2, // Discord Blurple
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💻 OS", Value: platform, Inline: true},
			{Name: "🐹 Go", Value: runtime.Version(), Inline: true},
			{Name: "🔼 CPUs", Value: fmt.Sprintf("%d", cpuCount), Inline: true},
			{Name: "🔥 CPU Usage", Value: fmt.Sprintf("%.1f%%", cpuUsage), Inline: true},
			{Name: "🧠 Memory", Value: memory, Inline: true},
			{Name: "🗃️ Database Size", Value: fmt.Sprintf("%d KB", dbSize), Inline: true},
			{Name: "👥 Tracked Users", Value: fmt.Sprintf("%d", users), Inline: true},
			{Name: "⏱️ Latency", Value: s.HeartbeatLatency().String(), Inline: true},
			{Name: "🚀 Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "⏰ Uptime", Value: time.Since(b.StartedAt()).Round(time.Second).String(), Inline: true},
		},
	}

	utils.SendEmbedResponse(s, i, embed)
}
