package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/service"
)

func runHolidaysImport(args []string) error {
	fs := flag.NewFlagSet("holidays-import", flag.ExitOnError)
	file := fs.String("file", "", "本地 ICS 文件路径")
	url := fs.String("url", "", "ICS 订阅地址（http(s):// 或 webcal://）")
	year := fs.Int("year", 0, "只导入该年份；0 表示全部")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "用法: staffctl holidays-import (-file F | -url U) [-year Y]\n\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n导入后需重启服务端生效\n")
	}
	fs.Parse(args)

	if (*file == "") == (*url == "") {
		fs.Usage()
		return errors.New("-file 与 -url 须且只能指定一个")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var src io.ReadCloser
	var err error
	if *file != "" {
		src, err = os.Open(*file)
	} else {
		src, err = service.FetchICSContent(ctx, *url)
	}
	if err != nil {
		return err
	}
	defer src.Close()

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	n, err := service.NewHolidayImporter(e.repo.Catalog, e.logger).Import(ctx, src, *year)
	if err != nil {
		return err
	}

	fmt.Printf("已导入 %d 个公众假期\n", n)
	return nil
}
