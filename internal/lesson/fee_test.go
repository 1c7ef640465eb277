package lesson

import (
	"errors"
	"testing"

	"cloud.google.com/go/civil"
)

func defaultFees() *FeeTable {
	return NewFeeTable(DefaultCoursePrices(), DefaultValueAddedRates(), DefaultOptionalItems())
}

// ── MainCourseFee ──

func TestMainCourseFee(t *testing.T) {
	fees := defaultFees()
	tests := []struct {
		name     string
		freq, n  int
		want     CoursePrice
		unpriced bool
	}{
		{"每周1次4堂", 1, 4, CoursePrice{Tuition: 1280, Materials: 50}, false},
		{"每周5次按3次计", 5, 12, CoursePrice{Tuition: 3480, Materials: 150}, false},
		{"10堂不分次数", 2, 10, CoursePrice{Tuition: 3000, Materials: 120}, false},
		{"30堂不分次数", 1, 30, CoursePrice{Tuition: 8700, Materials: 360}, false},
		{"未配置组合", 2, 4, CoursePrice{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fees.MainCourseFee(tt.freq, tt.n)
			if got != tt.want {
				t.Errorf("期望 %+v，实际 %+v", tt.want, got)
			}
			if tt.unpriced {
				if !errors.Is(err, ErrUnconfiguredPricing) {
					t.Errorf("期望 ErrUnconfiguredPricing，实际: %v", err)
				}
				var pe *UnconfiguredPricingError
				if !errors.As(err, &pe) || pe.Frequency != 2 || pe.LessonCount != 4 {
					t.Errorf("错误应携带价格键，实际: %v", err)
				}
			} else if err != nil {
				t.Errorf("不应返回错误: %v", err)
			}
		})
	}
}

// ── ValueAddedFee ──

func TestValueAddedFee(t *testing.T) {
	fees := defaultFees()
	want := map[int]int64{4: 400, 8: 800, 12: 900, 24: 1200, 10: 0, 36: 0}
	for n, amount := range want {
		if got := fees.ValueAddedFee(n); got != amount {
			t.Errorf("%d 堂增值课程费期望 %d，实际 %d", n, amount, got)
		}
	}
}

func TestMainCourseFeeExactRowWins(t *testing.T) {
	fees := NewFeeTable(map[PriceKey]CoursePrice{
		{Frequency: 2, LessonCount: 10}:            {Tuition: 2900, Materials: 100},
		{Frequency: AnyFrequency, LessonCount: 10}: {Tuition: 3000, Materials: 120},
	}, nil, nil)

	got, err := fees.MainCourseFee(2, 10)
	if err != nil || got != (CoursePrice{Tuition: 2900, Materials: 100}) {
		t.Errorf("精确行应优先，实际 %+v %v", got, err)
	}
	got, err = fees.MainCourseFee(1, 10)
	if err != nil || got != (CoursePrice{Tuition: 3000, Materials: 120}) {
		t.Errorf("无精确行时应回落到不分次数行，实际 %+v %v", got, err)
	}
}

// ── OptionalItems ──

func TestOptionalItemsFee_FixedDiscount(t *testing.T) {
	fees := defaultFees()
	items, errs := ParseOptionalItems([]string{"現金到校繳付24堂學費，送現金券"}, fees)
	if len(errs) != 0 {
		t.Fatalf("不应有无效项目: %v", errs)
	}
	total, itemized := fees.OptionalItemsFee(items)
	if total != -50 {
		t.Errorf("期望合计 -50，实际 %d", total)
	}
	if len(itemized) != 1 || itemized[0].Label != "現金到校繳付24堂學費，送現金券" || itemized[0].Delta != -50 {
		t.Errorf("明细不符: %+v", itemized)
	}
	if itemized[0].Kind != OptionalFixed {
		t.Errorf("期望固定项目，实际 %s", itemized[0].Kind)
	}
}

func TestParseOptionalItems_FreeTextAndMalformed(t *testing.T) {
	fees := defaultFees()
	items, errs := ParseOptionalItems([]string{
		"額外補堂 (+$150)",
		"亂寫一通",
		"   ",
		"特別教材（+$1,200）",
		"兄弟姊妹同報優惠",
	}, fees)

	if len(items) != 3 {
		t.Fatalf("期望 3 个有效项目，实际 %d: %+v", len(items), items)
	}
	if items[0].Kind != OptionalFreeText || items[0].Delta != 150 {
		t.Errorf("自由输入项目解析错误: %+v", items[0])
	}
	if items[1].Delta != 1200 {
		t.Errorf("千分位金额解析错误: %+v", items[1])
	}
	if items[2].Kind != OptionalFixed || items[2].Delta != -100 {
		t.Errorf("固定项目解析错误: %+v", items[2])
	}

	if len(errs) != 1 {
		t.Fatalf("期望 1 个无效项目，实际 %d", len(errs))
	}
	var me *MalformedLabelError
	if !errors.As(errs[0], &me) || me.Label != "亂寫一通" {
		t.Errorf("无效项目错误不符: %v", errs[0])
	}
	if !errors.Is(errs[0], ErrMalformedOptionalItemLabel) {
		t.Error("无效项目应可匹配 ErrMalformedOptionalItemLabel")
	}
}

// ── Breakdown ──

func TestBreakdown_Total(t *testing.T) {
	fees := defaultFees()
	items := []OptionalItem{{Kind: OptionalFixed, Label: "現金到校繳付24堂學費，送現金券", Delta: -50}}

	fb, err := fees.Breakdown(1, 4, true, items)
	if err != nil {
		t.Fatalf("Breakdown 应成功: %v", err)
	}
	if fb.Tuition != 1280 || fb.Materials != 50 || fb.ValueAddedUnit != 100 || fb.ValueAdded != 400 {
		t.Errorf("明细不符: %+v", fb)
	}
	if fb.Total != 1680 {
		t.Errorf("期望总额 1680，实际 %d", fb.Total)
	}
}

func TestBreakdown_NoValueAddedCourses(t *testing.T) {
	fb, err := defaultFees().Breakdown(2, 24, false, nil)
	if err != nil {
		t.Fatalf("Breakdown 应成功: %v", err)
	}
	if fb.ValueAdded != 0 || fb.Total != 6960+300 {
		t.Errorf("未选增值课程时不应收费: %+v", fb)
	}
}

func TestBreakdown_UnconfiguredStillItemized(t *testing.T) {
	fb, err := defaultFees().Breakdown(3, 4, true, []OptionalItem{{Kind: OptionalFreeText, Label: "x (+$20)", Delta: 20}})
	if !errors.Is(err, ErrUnconfiguredPricing) {
		t.Fatalf("期望 ErrUnconfiguredPricing，实际: %v", err)
	}
	if fb.Tuition != 0 || fb.Materials != 0 || fb.Total != 400+20 {
		t.Errorf("未配置价格时应按 0 计其余照算: %+v", fb)
	}
}

// ── WeekSpan / BillingPeriod ──

func TestWeekSpan(t *testing.T) {
	spans := NewWeekSpanTable(DefaultWeekSpans(), DirectWeekSpanCounts...)
	skip := []civil.Date{date(2025, 1, 1)}

	tests := []struct {
		name    string
		n, freq int
		skipped []civil.Date
		want    int
	}{
		{"12堂每周1次", 12, 1, nil, 15},
		{"12堂每周1次跳过1次", 12, 1, skip, 16},
		{"10堂直接取堂数", 10, 2, nil, 10},
		{"30堂直接取堂数加顺延", 30, 1, []civil.Date{date(2025, 1, 1), date(2025, 1, 29)}, 32},
		{"每周4次按3次计", 24, 4, nil, 10},
		{"未配置组合默认5周", 5, 1, nil, DefaultBaseWeeks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := spans.WeekSpan(tt.n, tt.freq, tt.skipped)
			if got != tt.want {
				t.Errorf("期望 %d 周，实际 %d", tt.want, got)
			}
			if diff := got - spans.Base(tt.n, tt.freq); diff != len(tt.skipped) {
				t.Errorf("顺延周数应等于跳过次数 %d，实际 %d", len(tt.skipped), diff)
			}
		})
	}
}

func TestNewBillingPeriod(t *testing.T) {
	p, err := NewBillingPeriod(date(2025, 1, 6), 15)
	if err != nil {
		t.Fatalf("NewBillingPeriod 应成功: %v", err)
	}
	if p.EndDate != date(2025, 4, 20) {
		t.Errorf("期望结束日 2025-04-20，实际 %s", p.EndDate)
	}
	if p.EndDate.DaysSince(p.StartDate) != 15*7-1 {
		t.Errorf("结束日应为开始日 + 周数*7 − 1")
	}
	if p.String() != "06/01/2025 至 20/04/2025" {
		t.Errorf("周期文本不符: %s", p.String())
	}

	if _, err := NewBillingPeriod(date(2025, 1, 6), 0); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("0 周应返回 ErrInvalidRequest，实际: %v", err)
	}
}
