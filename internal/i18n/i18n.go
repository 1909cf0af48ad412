// Package i18n registers the translated user-visible strings. English
// format strings are the message keys; other languages are added to the
// x/text catalog at init.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported lists the accepted language settings
var Supported = []string{"en", "zh"}

var tags = map[string]language.Tag{
	"en": language.English,
	"zh": language.Chinese,
}

// Printer returns a printer for a language setting
func Printer(lang string) (*message.Printer, error) {
	tag, ok := tags[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language %q (supported: %v)", lang, Supported)
	}
	return message.NewPrinter(tag), nil
}

func init() {
	for key, msg := range zh {
		if err := message.SetString(language.Chinese, key, msg); err != nil {
			panic(fmt.Sprintf("i18n: %s: %v", key, err))
		}
	}
}

var zh = map[string]string{
	// menus
	"Login failed":                "登录失败",
	"1. Retry":                    "1. 重试",
	"0. Exit":                     "0. 退出系统",
	"Administrator menu":          "管理员菜单",
	"Student menu":                "学生菜单",
	"1. Add student":              "1. 添加学生信息",
	"2. Delete student":           "2. 删除学生信息",
	"3. Query student":            "3. 查询学生信息",
	"4. Update scores":            "4. 修改学生成绩",
	"5. Show all students":        "5. 显示所有学生信息",
	"6. Reset student password":   "6. 重置学生密码",
	"7. Change password":          "7. 修改密码",
	"8. Log out":                  "8. 退出登录",
	"1. My scores":                "1. 查询我的成绩",
	"2. Change password":          "2. 修改密码",
	"3. Log out":                  "3. 退出登录",
	"Return to the login screen?": "确定要返回登录界面吗?",
	"Exit the system?":            "确定要退出系统吗?",
	"Exit":                        "退出系统",
	"Logged out":                  "已成功登出",

	"Enter the administrator password to confirm:":    "请输入管理员密码验证:",
	"Administrator password check failed!":            "管理员密码验证失败!",
	"Thank you for using the grade manager. Goodbye!": "感谢使用成绩管理系统，再见!",

	// login
	"Login":                               "登录",
	"Username:":                           "请输入用户名:",
	"Password:":                           "请输入密码:",
	"Login successful! Welcome %s":        "登录成功! 欢迎%s",
	"Wrong username or password! Retry?":  "用户名或密码错误! 是否重试?",
	"Please log in first!":                "请先登录!",
	"Only the administrator can do this!": "只有管理员可以执行此操作!",

	// records
	"Add student":                                                       "添加学生信息",
	"Delete student":                                                    "删除学生信息",
	"Update scores":                                                     "修改学生成绩",
	"Query student":                                                     "查询学生信息",
	"All students":                                                      "所有学生信息",
	"Student ID (Esc to go back):":                                      "请输入学号(ESC返回):",
	"Name (Esc to go back):":                                            "请输入姓名(ESC返回):",
	"Chinese score:":                                                    "语文成绩:",
	"Math score:":                                                       "数学成绩:",
	"English score:":                                                    "英语成绩:",
	"That student ID already exists!":                                   "该学号已存在!",
	"Please enter valid numeric scores!":                                "请输入有效的数字成绩!",
	"Student %s added! Initial password is %s":                          "学生%s添加成功! 初始密码为%s",
	"ID of the student to delete (Esc to go back):":                     "请输入要删除的学生学号(ESC返回):",
	"ID of the student to update (Esc to go back):":                     "请输入要修改的学生学号(ESC返回):",
	"ID of the student to query (Esc to go back):":                      "请输入要查询的学生学号(ESC返回):",
	"No student with that ID!":                                          "未找到该学号的学生!",
	"No student with that ID! Retry?":                                   "未找到该学号的学生! 是否重试?",
	"No student with that ID! Did you mean %s? Retry?":                  "未找到该学号的学生! 您是否要找 %s? 是否重试?",
	"Student %s (ID: %s) deleted":                                       "学生%s(学号:%s)已删除",
	"Student record updated!":                                           "学生信息更新成功!",
	"Current record:":                                                   "当前学生信息:",
	"Enter new scores (blank keeps the current value, Esc to go back):": "请输入新的成绩(留空则保持不变, ESC返回):",
	"No student records yet!":                                           "当前没有学生信息!",

	"ID: %s":        "学号: %s",
	"Name: %s":      "姓名: %s",
	"Chinese: %s":   "语文: %s",
	"Math: %s":      "数学: %s",
	"English: %s":   "英语: %s",
	"Total: %s":     "总分: %s",
	"Average: %.2f": "平均分: %.2f",

	// roster columns
	"ID":      "学号",
	"Name":    "姓名",
	"Chinese": "语文",
	"Math":    "数学",
	"English": "英语",
	"Total":   "总分",
	"Average": "平均分",

	// passwords
	"Reset student password":                             "重置学生密码",
	"Change password":                                    "修改密码",
	"Username whose password to reset (Esc to go back):": "请输入要修改密码的用户名(ESC返回):",
	"Use Change password for the administrator account!": "管理员账户请使用修改密码!",
	"That user does not exist!":                          "该用户不存在!",
	"New password (Esc to go back):":                     "请输入新密码(ESC返回):",
	"New password again (Esc to go back):":               "请再次输入新密码(ESC返回):",
	"Current password (Esc to go back):":                 "请输入原密码(ESC返回):",
	"Current password is incorrect!":                     "原密码错误!",
	"The two new passwords do not match!":                "两次输入的新密码不一致!",
	"Password changed!":                                  "密码修改成功!",
	"Password of user %s has been reset":                 "用户%s的密码已重置",

	// operator commands
	"Administrator password: ": "管理员密码: ",
	"New password: ":           "新密码: ",
	"New password again: ":     "再次输入新密码: ",

	// persistence
	"Failed to load data: %v": "加载数据失败: %v",
	"Failed to save data: %v": "保存数据失败: %v",

	"Data file is not valid JSON - fix or move it away to start over":               "数据文件不是有效的JSON - 请修复或移走后重新开始",
	"Storage is read-only - choose a writable data location":                        "存储为只读 - 请选择可写的数据位置",
	"Permission denied - check the permissions of the data file and its directory": "权限不足 - 请检查数据文件及其目录的权限",
	"Disk is full - free some space and try again":                                  "磁盘已满 - 请释放空间后重试",
	"Data path is a directory - point the data setting at a file":                   "数据路径是一个目录 - 请指定一个文件",
	"Database is locked by another program - close it and try again":                "数据库被其他程序锁定 - 请关闭后重试",
	"Database file is damaged or not a SQLite database":                             "数据库文件已损坏或不是SQLite数据库",

	// primitives
	"↑/↓ move · enter select · esc back": "↑↓选择 | Enter确认 | ESC返回",
	"enter confirm · esc cancel":         "Enter确认 | ESC取消",
	"y yes · n/esc no":                   "[Y] 是  [N] 否",
	"↑/↓ scroll · esc back":              "↑↓浏览 | ESC返回",
	"(%d-%d/%d) ":                        "(%d-%d/%d) ",
	"press any key to return":            "按任意键继续...",
}
