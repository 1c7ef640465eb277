package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/service"
)

func runCreate(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	username := fs.String("username", "", "登录用户名（必填）")
	name := fs.String("name", "", "员工姓名（必填）")
	branch := fs.String("branch", "", "所属分校（必填）")
	admin := fs.Bool("admin", false, "授予管理员角色")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "用法: staffctl create -username U -name N -branch B [-admin]\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if *username == "" || *name == "" || *branch == "" {
		fs.Usage()
		return errors.New("-username、-name、-branch 均为必填")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalog, err := service.LoadCatalog(ctx, &e.cfg.Catalog, e.repo.Catalog, e.logger)
	if err != nil {
		return err
	}

	staffSvc := service.NewStaffService(e.repo, catalog.Options, e.logger)
	staff, err := staffSvc.Create(ctx, service.CreateStaffInput{
		Username: *username,
		Name:     *name,
		Branch:   *branch,
		Password: password,
		Admin:    *admin,
	})
	if err != nil {
		return err
	}

	fmt.Printf("已创建员工 %s（%s，%s，%s）\n", staff.Username, staff.Name, staff.Branch, staff.Role)
	return nil
}

// promptPassword 终端下隐藏输入并要求确认；非终端（管道）读取一行
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("读取密码失败: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "输入密码: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("读取密码失败: %w", err)
	}

	fmt.Fprint(os.Stderr, "确认密码: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("读取密码失败: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("两次输入的密码不一致")
	}
	return string(first), nil
}
