package database

import (
	"log"

	"pwnpath_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed 课程、题目、项目的初始数据，仅在对应表为空时写入
func Seed(db *gorm.DB) error {
	if err := seedCurriculum(db); err != nil {
		return err
	}
	if err := seedChallenges(db); err != nil {
		return err
	}
	return seedProjects(db)
}

func seedCurriculum(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Phase{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	phases := []model.Phase{
		{
			Phase:         "foundations",
			PhaseOrder:    1,
			Title:         "基础能力",
			Description:   "C 语言、汇编、内存布局与调试工具，后续一切利用技术的地基",
			EstimatedDays: 14,
			Lessons: []model.Lesson{
				{
					Day: 1, Hour: 1,
					Title:          "内存布局与进程地址空间",
					Description:    "栈、堆、数据段、代码段，虚拟内存的基本概念",
					TimeAllocation: 60,
					Activities: []model.Activity{
						{Type: model.ActivityReading, Title: "阅读进程内存布局章节", Duration: 25},
						{Type: model.ActivityVideo, Title: "观看地址空间讲解视频", Duration: 15},
						{Type: model.ActivityCoding, Title: "用 gdb 观察各段地址", Duration: 20},
					},
					Resources: []model.LessonResource{
						{Type: "book", Title: "CS:APP 第 9 章", URL: "https://csapp.cs.cmu.edu/"},
					},
					LearningObjectives: []string{"说出进程地址空间的五个区域", "用 gdb 打印变量地址并判断所在段"},
				},
				{
					Day: 1, Hour: 2,
					Title:          "x86-64 汇编入门",
					Description:    "寄存器、调用约定、常见指令",
					TimeAllocation: 60,
					Activities: []model.Activity{
						{Type: model.ActivityReading, Title: "阅读调用约定笔记", Duration: 30},
						{Type: model.ActivityCoding, Title: "反汇编 hello world 并标注", Duration: 30},
					},
					Quiz: &model.Quiz{
						Questions: []model.QuizQuestion{
							{
								Question:      "x86-64 System V 调用约定中第一个整型参数放在哪个寄存器？",
								Options:       []string{"rax", "rdi", "rsi", "rsp"},
								CorrectAnswer: 1,
								Explanation:   "整型参数依次使用 rdi、rsi、rdx、rcx、r8、r9",
							},
							{
								Question:      "call 指令执行时压入栈的是什么？",
								Options:       []string{"rbp", "返回地址", "rsp", "标志寄存器"},
								CorrectAnswer: 1,
							},
						},
					},
				},
				{
					Day: 2, Hour: 1,
					Title:          "pwndbg 与动态调试",
					Description:    "断点、单步、内存检查，pwndbg 常用命令",
					TimeAllocation: 60,
					Activities: []model.Activity{
						{Type: model.ActivityVideo, Title: "观看 pwndbg 实战视频", Duration: 20},
						{Type: model.ActivityCoding, Title: "调试 crackme 找出密码", Duration: 40},
					},
				},
			},
			Milestones: []model.Milestone{
				{Title: "环境就绪", Description: "调试环境搭建完成，能独立反汇编并调试简单程序", Badge: "toolsmith"},
			},
		},
		{
			Phase:         "stack-exploitation",
			PhaseOrder:    2,
			Title:         "栈利用",
			Description:   "栈溢出、ret2win、shellcode 注入与 NX 绕过",
			EstimatedDays: 21,
			Lessons: []model.Lesson{
				{
					Day: 1, Hour: 1,
					Title:          "栈溢出原理",
					Description:    "返回地址覆盖与控制流劫持",
					TimeAllocation: 90,
					Activities: []model.Activity{
						{Type: model.ActivityReading, Title: "阅读栈溢出原理", Duration: 30},
						{Type: model.ActivityChallenge, Title: "完成 ret2win 练习", Duration: 60},
					},
					Prerequisites: []string{"内存布局与进程地址空间", "x86-64 汇编入门"},
				},
				{
					Day: 2, Hour: 1,
					Title:          "shellcode 编写",
					Description:    "execve shellcode 与注入技巧",
					TimeAllocation: 90,
					Activities: []model.Activity{
						{Type: model.ActivityVideo, Title: "观看 shellcode 编写视频", Duration: 30},
						{Type: model.ActivityCoding, Title: "手写并测试 execve shellcode", Duration: 45},
						{Type: model.ActivityReading, Title: "阅读 NX 与可执行栈说明", Duration: 15, IsOptional: true},
					},
				},
			},
			Milestones: []model.Milestone{
				{Title: "首个 shell", Description: "独立完成一次栈溢出拿 shell", Badge: "stack-smasher"},
			},
		},
		{
			Phase:         "rop-and-mitigations",
			PhaseOrder:    3,
			Title:         "ROP 与防护绕过",
			Description:   "ROP 链构造、ASLR/PIE/Canary 绕过、ret2libc",
			EstimatedDays: 28,
			Lessons: []model.Lesson{
				{
					Day: 1, Hour: 1,
					Title:          "ROP 基础",
					Description:    "gadget 搜索与链式调用",
					TimeAllocation: 90,
					Activities: []model.Activity{
						{Type: model.ActivityReading, Title: "阅读 ROP 入门", Duration: 30},
						{Type: model.ActivityChallenge, Title: "用 ROPgadget 构造第一条链", Duration: 60},
					},
				},
				{
					Day: 2, Hour: 1,
					Title:          "ret2libc 与地址泄漏",
					Description:    "GOT/PLT、泄漏 libc 基址、one_gadget",
					TimeAllocation: 90,
					Activities: []model.Activity{
						{Type: model.ActivityVideo, Title: "观看 ret2libc 演示", Duration: 30},
						{Type: model.ActivityChallenge, Title: "完成 leak + ret2libc 练习", Duration: 60},
					},
				},
			},
		},
		{
			Phase:         "heap-exploitation",
			PhaseOrder:    4,
			Title:         "堆利用",
			Description:   "ptmalloc 内部结构、UAF、double free 与 tcache 攻击",
			EstimatedDays: 35,
			Lessons: []model.Lesson{
				{
					Day: 1, Hour: 1,
					Title:          "ptmalloc 结构",
					Description:    "chunk、bin、tcache 的组织方式",
					TimeAllocation: 120,
					Activities: []model.Activity{
						{Type: model.ActivityReading, Title: "阅读 how2heap 前三节", Duration: 60},
						{Type: model.ActivityCoding, Title: "在 gdb 中观察 chunk 分配", Duration: 60},
					},
				},
				{
					Day: 2, Hour: 1,
					Title:          "UAF 与 tcache poisoning",
					Description:    "释放后使用与任意地址写",
					TimeAllocation: 120,
					Activities: []model.Activity{
						{Type: model.ActivityVideo, Title: "观看 UAF 案例分析", Duration: 40},
						{Type: model.ActivityChallenge, Title: "完成 tcache poisoning 练习", Duration: 80},
					},
				},
			},
			Milestones: []model.Milestone{
				{Title: "堆感", Description: "能独立分析一道中等难度堆题", Badge: "heap-wizard"},
			},
		},
	}

	for i := range phases {
		if err := db.Create(&phases[i]).Error; err != nil {
			return err
		}
	}
	log.Println("Curriculum seeded")
	return nil
}

func seedChallenges(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Challenge{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type seedChallenge struct {
		model.Challenge
		Flag string
	}
	challenges := []seedChallenge{
		{
			Challenge: model.Challenge{
				Slug: "warmup-overflow", Title: "Warmup Overflow", Category: "stack",
				Difficulty: "easy", Points: 100, Phase: "stack-exploitation",
				Description: "经典 ret2win，覆盖返回地址调用 win 函数",
				Hints:       []string{"先用 cyclic 找偏移", "win 函数的地址在符号表里"},
			},
			Flag: "flag{smashed_my_first_stack}",
		},
		{
			Challenge: model.Challenge{
				Slug: "rop-garden", Title: "ROP Garden", Category: "rop",
				Difficulty: "medium", Points: 250, Phase: "rop-and-mitigations",
				Description: "NX 开启，静态链接，gadget 管够",
				Hints:       []string{"找 syscall gadget", "rax=59 是 execve"},
			},
			Flag: "flag{gadgets_all_the_way_down}",
		},
		{
			Challenge: model.Challenge{
				Slug: "note-keeper", Title: "Note Keeper", Category: "heap",
				Difficulty: "hard", Points: 400, Phase: "heap-exploitation",
				Description: "增删改查的笔记程序，delete 后指针未清空",
				Hints:       []string{"UAF 读泄漏 libc", "tcache poisoning 写 __free_hook"},
			},
			Flag: "flag{use_after_free_profit}",
		},
	}

	for _, c := range challenges {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Flag), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		c.Challenge.FlagHash = string(hash)
		if err := db.Create(&c.Challenge).Error; err != nil {
			return err
		}
	}
	log.Println("Challenges seeded")
	return nil
}

func seedProjects(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Project{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	projects := []model.Project{
		{
			Slug: "exploit-writeup", Title: "完整利用报告", Phase: "stack-exploitation",
			Description:  "选一道已完成的栈题，从逆向到利用写一份完整报告",
			Requirements: []string{"包含漏洞定位过程", "利用脚本可复现"},
			Deliverables: []string{"writeup 仓库", "exploit.py"},
		},
		{
			Slug: "custom-rop-tool", Title: "自制 gadget 搜索工具", Phase: "rop-and-mitigations",
			Description:  "实现一个简化版 gadget 搜索器并用它解一道题",
			Requirements: []string{"支持 ELF64", "能搜索 ret 结尾的 gadget"},
			Deliverables: []string{"工具源码", "使用演示视频"},
		},
	}
	for i := range projects {
		if err := db.Create(&projects[i]).Error; err != nil {
			return err
		}
	}
	log.Println("Projects seeded")
	return nil
}
