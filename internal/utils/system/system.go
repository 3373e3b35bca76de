package system

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/observatory-platform/repodeps/internal/utils/logger"
	"github.com/observatory-platform/repodeps/internal/utils/shell"
)

var (
	OsReleaseFile = "/etc/os-release"
)

// GetHostOsInfo returns the host OS name, version and architecture
func GetHostOsInfo(ctx context.Context) (map[string]string, error) {
	log := logger.Logger()
	var hostOsInfo = map[string]string{
		"name":    "",
		"version": "",
		"arch":    "",
	}

	// Get architecture using uname command
	output, err := shell.ExecCmd(ctx, "uname -m", nil)
	if err != nil {
		log.Errorf("Failed to get host architecture: %v", err)
		return hostOsInfo, fmt.Errorf("failed to get host architecture: %w", err)
	}
	hostOsInfo["arch"] = strings.TrimSpace(output)

	// Read from /etc/os-release if it exists
	if _, err := os.Stat(OsReleaseFile); err == nil {
		file, err := os.Open(OsReleaseFile)
		if err == nil {
			defer file.Close()
			scanner := bufio.NewScanner(file)

			for scanner.Scan() {
				line := scanner.Text()
				if strings.HasPrefix(line, "NAME=") {
					parts := strings.SplitN(line, "=", 2)
					if len(parts) == 2 {
						hostOsInfo["name"] = strings.Trim(strings.TrimSpace(parts[1]), "\"")
					}
				} else if strings.HasPrefix(line, "VERSION_ID=") {
					parts := strings.SplitN(line, "=", 2)
					if len(parts) == 2 {
						hostOsInfo["version"] = strings.Trim(strings.TrimSpace(parts[1]), "\"")
					}
				}
			}

			log.Infof("Detected OS info: " + hostOsInfo["name"] + " " +
				hostOsInfo["version"] + " " + hostOsInfo["arch"])

			return hostOsInfo, nil
		}
	}

	output, err = shell.ExecCmd(ctx, "lsb_release -si", nil)
	if err != nil {
		log.Errorf("Failed to get host OS name: %v", err)
		return hostOsInfo, fmt.Errorf("failed to get host OS name: %w", err)
	}
	if output != "" {
		hostOsInfo["name"] = strings.TrimSpace(output)
		output, err = shell.ExecCmd(ctx, "lsb_release -sr", nil)
		if err != nil {
			log.Errorf("Failed to get host OS version: %v", err)
			return hostOsInfo, fmt.Errorf("failed to get host OS version: %w", err)
		}
		if output != "" {
			hostOsInfo["version"] = strings.TrimSpace(output)
			log.Infof("Detected OS info: " + hostOsInfo["name"] + " " +
				hostOsInfo["version"] + " " + hostOsInfo["arch"])
			return hostOsInfo, nil
		}
	}

	log.Errorf("Failed to detect host OS info!")
	return hostOsInfo, fmt.Errorf("failed to detect host OS info")
}

// GetHostOsPkgManager returns the repository query tool for the host OS.
// Only rpm-family managers are supported; they share the list/info/deplist
// command surface the collector depends on.
func GetHostOsPkgManager(ctx context.Context) (string, error) {
	log := logger.Logger()
	hostOsInfo, err := GetHostOsInfo(ctx)
	if err != nil {
		return "", err
	}

	switch hostOsInfo["name"] {
	case "Fedora", "Fedora Linux", "Rocky Linux", "AlmaLinux", "Red Hat Enterprise Linux":
		return "dnf", nil
	case "CentOS", "CentOS Linux", "CentOS Stream", "Amazon Linux", "Scientific Linux":
		return "yum", nil
	case "Microsoft Azure Linux", "CBL-Mariner", "Edge Microvisor Toolkit":
		return "tdnf", nil
	default:
		if tool, ok := detectQueryTool(); ok {
			log.Infof("Using package query tool %s for host OS %s", tool, hostOsInfo["name"])
			return tool, nil
		}
		log.Errorf("Unsupported host OS: %s", hostOsInfo["name"])
		return "", fmt.Errorf("unsupported host OS: %s", hostOsInfo["name"])
	}
}

// detectQueryTool checks for query tool commands - order matters for precedence
func detectQueryTool() (string, bool) {
	for _, tool := range []string{"dnf", "tdnf", "yum"} {
		if shell.IsCommandExist(tool) {
			return tool, true
		}
	}
	return "", false
}
