// staffctl 员工账号与假期数据的运维命令
//
//	staffctl create -username amy -name "Amy Chan" -branch 淘大 [-admin]
//	staffctl holidays-import -file 2026.ics [-year 2026]
//	staffctl holidays-import -url webcal://example.com/hk.ics
package main

import (
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintf(os.Stderr, "用法: staffctl <command> [OPTIONS]\n\n")
	fmt.Fprintf(os.Stderr, "命令:\n")
	fmt.Fprintf(os.Stderr, "  create           新建员工账号（交互输入密码）\n")
	fmt.Fprintf(os.Stderr, "  holidays-import  从 ICS 导入公众假期\n")
	fmt.Fprintf(os.Stderr, "\n配置与服务端相同（config.yaml / LESSON_* 环境变量）\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "create":
		err = runCreate(os.Args[2:])
	case "holidays-import":
		err = runHolidaysImport(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "未知命令: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
